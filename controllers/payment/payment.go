package paymentController

import (
	"coinzy/config"
	"coinzy/database"
	"coinzy/gateway"
	"coinzy/models"
	"coinzy/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gateway is the Razorpay client used to open orders. main wires it from
// config; tests point it at a stub server.
var Gateway *gateway.Client

// InitGateway builds the Razorpay client from the loaded configuration
func InitGateway() {
	cfg := config.AppConfig
	Gateway = gateway.NewClient(cfg.RazorpayApiURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
}

// The two payment endpoints keep the wire contract the existing frontend
// expects: a flat error object rather than the envelope used elsewhere.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}

// CreateOrder opens a Razorpay order for a wallet deposit and records a
// pending transaction keyed to the gateway order id. No wallet mutation
// happens here; the balance is only credited after verification.
func CreateOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	cfg := config.AppConfig

	reqData := new(struct {
		Amount float64 `json:"amount"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if reqData.Amount < cfg.MinDepositAmount {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid amount. Minimum ₹100 required.")
	}
	if reqData.Amount > cfg.MaxDepositAmount {
		return errorResponse(c, fiber.StatusBadRequest, "Maximum deposit is ₹1,00,000 per transaction.")
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("Razorpay credentials not configured")
		return errorResponse(c, fiber.StatusInternalServerError, "Razorpay credentials not configured")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())
	order, raw, err := Gateway.CreateOrder(int64(reqData.Amount*100), "INR", receipt)
	if err != nil {
		log.Printf("Error creating Razorpay order: %v", err)
		return errorResponse(c, fiber.StatusBadGateway, err.Error())
	}

	transaction := models.WalletTransaction{
		UserID:             userId,
		TransactionType:    models.TransactionTypeDeposit,
		Amount:             reqData.Amount,
		Status:             models.TransactionStatusPending,
		Description:        "Wallet deposit via Razorpay",
		RazorpayOrderID:    order.ID,
		GatewayResponseRaw: datatypes.JSON(raw),
	}
	if err := db.Create(&transaction).Error; err != nil {
		// The gateway order exists but no local row does. Unpaid orders
		// lapse on Razorpay's side; log the id for reconciliation.
		log.Printf("Orphaned gateway order %s: failed to record transaction: %v", order.ID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Database error: failed to record transaction")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"order_id":       order.ID,
		"amount":         order.Amount,
		"currency":       order.Currency,
		"key_id":         cfg.RazorpayKeyID,
		"transaction_id": transaction.ID,
	})
}

// VerifyPayment recomputes the checkout callback signature and, on a match,
// completes the pending transaction and credits the wallet. The completion
// update is keyed on status = pending so a replayed verification can never
// credit the wallet twice.
func VerifyPayment(c *fiber.Ctx) error {
	cfg := config.AppConfig

	reqData := new(struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
		TransactionID     uint   `json:"transaction_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if reqData.RazorpayOrderID == "" || reqData.RazorpayPaymentID == "" ||
		reqData.RazorpaySignature == "" || reqData.TransactionID == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "Missing required payment fields")
	}

	if cfg.RazorpayKeySecret == "" {
		log.Println("Razorpay secret not configured")
		return errorResponse(c, fiber.StatusInternalServerError, "Razorpay secret not configured")
	}

	if !gateway.VerifySignature(cfg.RazorpayKeySecret, reqData.RazorpayOrderID, reqData.RazorpayPaymentID, reqData.RazorpaySignature) {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid payment signature")
	}

	db := database.Database.Db

	res := db.Model(&models.WalletTransaction{}).
		Where("id = ? AND razorpay_order_id = ? AND status = ?",
			reqData.TransactionID, reqData.RazorpayOrderID, models.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":              models.TransactionStatusCompleted,
			"razorpay_payment_id": reqData.RazorpayPaymentID,
			"razorpay_signature":  reqData.RazorpaySignature,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		log.Printf("Error completing transaction %d: %v", reqData.TransactionID, res.Error)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update transaction")
	}

	var transaction models.WalletTransaction
	if res.RowsAffected == 0 {
		// Either no row matches id + order id, or a previous call already
		// completed it. Completed replays with the same payment id are
		// acknowledged without crediting again.
		err := db.Where("id = ? AND razorpay_order_id = ?", reqData.TransactionID, reqData.RazorpayOrderID).
			First(&transaction).Error
		if err == nil && transaction.Status == models.TransactionStatusCompleted &&
			transaction.RazorpayPaymentID == reqData.RazorpayPaymentID {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "transaction": transaction})
		}
		return errorResponse(c, fiber.StatusNotFound, "Transaction not found")
	}

	if err := db.First(&transaction, reqData.TransactionID).Error; err != nil {
		log.Printf("Error reloading transaction %d: %v", reqData.TransactionID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to load transaction")
	}

	// Credit the wallet. The payment is already complete; a failure here is
	// logged and reconciled out of band rather than rolled back.
	if err := db.Model(&models.User{}).Where("id = ?", transaction.UserID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", transaction.Amount)).Error; err != nil {
		log.Printf("Balance update error for user %d: %v", transaction.UserID, err)
	}

	creditReferralBonus(db, &transaction)

	var user models.User
	if err := db.First(&user, transaction.UserID).Error; err == nil && user.Email != "" {
		go utils.SendDepositEmail(user.Email, user.Name, transaction.Amount)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "transaction": transaction})
}

// creditReferralBonus pays the referrer their cut of a completed deposit.
// Best effort: the deposit stands whether or not this succeeds.
func creditReferralBonus(db *gorm.DB, transaction *models.WalletTransaction) {
	var user models.User
	if err := db.First(&user, transaction.UserID).Error; err != nil || user.ReferredBy == nil {
		return
	}

	bonus := transaction.Amount * config.AppConfig.ReferralBonusRate / 100
	if bonus <= 0 {
		return
	}

	if err := db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", *user.ReferredBy).
		UpdateColumns(map[string]interface{}{
			"wallet_balance":    gorm.Expr("wallet_balance + ?", bonus),
			"referral_earnings": gorm.Expr("referral_earnings + ?", bonus),
		}).Error; err != nil {
		log.Printf("Referral bonus error for referrer %d: %v", *user.ReferredBy, err)
		return
	}

	bonusTxn := models.WalletTransaction{
		UserID:          *user.ReferredBy,
		TransactionType: models.TransactionTypeReferralBonus,
		Amount:          bonus,
		Status:          models.TransactionStatusCompleted,
		Description:     "Referral bonus: deposit by " + user.Name,
		ReferenceType:   "user",
		ReferenceID:     user.ID,
	}
	if err := db.Create(&bonusTxn).Error; err != nil {
		log.Printf("Error recording referral bonus for referrer %d: %v", *user.ReferredBy, err)
	}
}
