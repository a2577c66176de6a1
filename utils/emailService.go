package utils

import (
	"coinzy/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid. A missing API
// key disables delivery (local/dev and tests).
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email delivery disabled, skipping %q to %s", subject, to)
		return nil
	}

	from := mail.NewEmail("Coinzy", config.AppConfig.EmailSender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}

// emailTemplate wraps body content in the shared layout
func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #333333; text-align: center;">%s</h2>
				%s
				<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using Coinzy.</p>
			</div>
		</body>
	</html>`, title, bodyContent)
}

// SendDepositEmail confirms a completed wallet deposit
func SendDepositEmail(email, name string, amount float64) {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Hi %s,</p>
		<p style="font-size: 16px; color: #555555;">Your deposit of <b>₹%.2f</b> has been credited to your Coinzy wallet.</p>`,
		name, amount)

	if err := SendEmail(email, "Deposit successful", emailTemplate("Deposit Confirmed", body)); err != nil {
		log.Printf("Error sending deposit email to %s: %v", email, err)
	}
}

// SendWithdrawalEmail acknowledges a withdrawal request
func SendWithdrawalEmail(email, name string, amount float64, upiID string) {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Hi %s,</p>
		<p style="font-size: 16px; color: #555555;">We received your withdrawal request of <b>₹%.2f</b> to <b>%s</b>. You will be notified once it is processed.</p>`,
		name, amount, upiID)

	if err := SendEmail(email, "Withdrawal request received", emailTemplate("Withdrawal Requested", body)); err != nil {
		log.Printf("Error sending withdrawal email to %s: %v", email, err)
	}
}
