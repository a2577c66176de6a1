package walletValidator

import (
	"coinzy/config"
	"coinzy/middleware"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Withdraw validates a withdrawal request
func Withdraw() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount float64 `json:"amount"`
			UpiID  string  `json:"upiId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount < config.AppConfig.MinWithdrawalAmount {
			errors["amount"] = fmt.Sprintf("Minimum withdrawal amount is ₹%.0f!", config.AppConfig.MinWithdrawalAmount)
		}
		if reqData.UpiID == "" {
			errors["upiId"] = "UPI ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdraw", reqData)
		return c.Next()
	}
}

// WithdrawalAction validates the admin approve/reject payload
func WithdrawalAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TransactionID uint `json:"transactionId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TransactionID == 0 {
			errors["transactionId"] = "Transaction ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdrawalAction", reqData)
		return c.Next()
	}
}
