package walletController

import (
	"coinzy/database"
	"coinzy/middleware"
	"coinzy/models"
	"coinzy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetWalletBalance returns user's current wallet balance
func GetWalletBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":          user.WalletBalance,
		"referralEarnings": user.ReferralEarnings,
		"currency":         "INR",
	})
}

// GetWalletHistory returns user's wallet transaction history
func GetWalletHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type") // deposit, withdrawal, slot_booking, ...

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.WalletTransaction{}).Where("user_id = ? AND is_deleted = false", userId)

	if txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}

	var total int64
	query.Count(&total)

	var transactions []models.WalletTransaction
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet history fetched!", fiber.Map{
		"transactions":   transactions,
		"currentBalance": user.WalletBalance,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// RequestWithdrawal debits the wallet and records a pending withdrawal.
// Payouts are settled out of band by an operator via the admin endpoints.
func RequestWithdrawal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedWithdraw").(*struct {
		Amount float64 `json:"amount"`
		UpiID  string  `json:"upiId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Conditional debit: the predicate keeps a concurrent withdrawal from
	// driving the balance negative.
	res := db.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userId, reqData.Amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", reqData.Amount))
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process withdrawal!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient wallet balance!", nil)
	}

	transaction := models.WalletTransaction{
		UserID:          userId,
		TransactionType: models.TransactionTypeWithdrawal,
		Amount:          reqData.Amount,
		Status:          models.TransactionStatusPending,
		Description:     "Withdrawal to " + reqData.UpiID,
		UpiID:           reqData.UpiID,
	}
	if err := db.Create(&transaction).Error; err != nil {
		// Put the money back; the request was never recorded.
		db.Model(&models.User{}).Where("id = ?", userId).
			UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", reqData.Amount))
		log.Printf("Error recording withdrawal for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record withdrawal!", nil)
	}

	if user.Email != "" {
		go utils.SendWithdrawalEmail(user.Email, user.Name, reqData.Amount, reqData.UpiID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal requested!", fiber.Map{
		"transactionId": transaction.ID,
		"amount":        reqData.Amount,
		"status":        transaction.Status,
	})
}

// ApproveWithdrawal marks a pending withdrawal as paid out (Admin only)
func ApproveWithdrawal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedWithdrawalAction").(*struct {
		TransactionID uint `json:"transactionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.WalletTransaction{}).
		Where("id = ? AND transaction_type = ? AND status = ?",
			reqData.TransactionID, models.TransactionTypeWithdrawal, models.TransactionStatusPending).
		Update("status", models.TransactionStatusCompleted)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve withdrawal!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending withdrawal not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal approved!", fiber.Map{
		"transactionId": reqData.TransactionID,
		"status":        models.TransactionStatusCompleted,
	})
}

// RejectWithdrawal fails a pending withdrawal and refunds the amount (Admin only)
func RejectWithdrawal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedWithdrawalAction").(*struct {
		TransactionID uint `json:"transactionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var transaction models.WalletTransaction
	if err := db.Where("id = ? AND transaction_type = ? AND status = ?",
		reqData.TransactionID, models.TransactionTypeWithdrawal, models.TransactionStatusPending).
		First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending withdrawal not found!", nil)
	}

	res := db.Model(&models.WalletTransaction{}).
		Where("id = ? AND status = ?", transaction.ID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusFailed)
	if res.Error != nil || res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject withdrawal!", nil)
	}

	if err := db.Model(&models.User{}).Where("id = ?", transaction.UserID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", transaction.Amount)).Error; err != nil {
		log.Printf("Refund error for user %d on withdrawal %d: %v", transaction.UserID, transaction.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal rejected and refunded!", fiber.Map{
		"transactionId": transaction.ID,
		"status":        models.TransactionStatusFailed,
		"refunded":      transaction.Amount,
	})
}
