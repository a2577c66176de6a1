package slotController

import (
	"coinzy/config"
	"coinzy/database"
	"coinzy/middleware"
	"coinzy/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// GetWindow feeds the client countdown: whether booking is open and how
// long until the next boundary.
func GetWindow(c *fiber.Ctx) error {
	t := timeNow()
	boundary := NextBoundary(t)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking window fetched!", fiber.Map{
		"open":         WindowOpen(t),
		"message":      WindowMessage(t),
		"nextBoundary": boundary,
		"secondsLeft":  int64(boundary.Sub(t).Seconds()),
	})
}

// BookSlot books today's ad slot inside the evening window, debiting the
// wallet for the slot amount. One active slot per user per day.
func BookSlot(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedBookSlot").(*struct {
		Amount float64 `json:"amount"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	t := timeNow()
	if !WindowOpen(t) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Booking window is closed! Slots open 6 PM – 8 PM.", nil)
	}

	db := database.Database.Db
	today := now.With(t).BeginningOfDay()

	var existing int64
	db.Model(&models.Slot{}).
		Where("user_id = ? AND booked_for = ? AND status IN ?",
			userId, today, []models.SlotStatus{models.SlotStatusBooked, models.SlotStatusLive}).
		Count(&existing)
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already booked a slot for today!", nil)
	}

	// Conditional debit, same guard as withdrawals
	res := db.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userId, reqData.Amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", reqData.Amount))
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book slot!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient wallet balance!", nil)
	}

	slot := models.Slot{
		UserID:     userId,
		Amount:     reqData.Amount,
		ReturnRate: config.AppConfig.SlotReturnRate,
		Status:     models.SlotStatusBooked,
		BookedFor:  today,
	}
	if err := db.Create(&slot).Error; err != nil {
		db.Model(&models.User{}).Where("id = ?", userId).
			UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", reqData.Amount))
		log.Printf("Error creating slot for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book slot!", nil)
	}

	transaction := models.WalletTransaction{
		UserID:          userId,
		TransactionType: models.TransactionTypeSlotBooking,
		Amount:          reqData.Amount,
		Status:          models.TransactionStatusCompleted,
		Description:     "Ad slot booking",
		ReferenceType:   "slot",
		ReferenceID:     slot.ID,
	}
	if err := db.Create(&transaction).Error; err != nil {
		log.Printf("Error recording slot booking txn for user %d: %v", userId, err)
	}

	expectedReturn := reqData.Amount * slot.ReturnRate / 100

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot booked!", fiber.Map{
		"slotId":         slot.ID,
		"amount":         slot.Amount,
		"returnRate":     slot.ReturnRate,
		"expectedReturn": expectedReturn,
		"totalReturn":    reqData.Amount + expectedReturn,
		"bookedFor":      slot.BookedFor,
		"status":         slot.Status,
	})
}

// GetTodaySlot returns the user's slot for the current day, if any
func GetTodaySlot(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	today := now.With(timeNow()).BeginningOfDay()

	var slot models.Slot
	if err := database.Database.Db.
		Where("user_id = ? AND booked_for = ?", userId, today).
		First(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No slot booked today.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Today's slot fetched!", slot)
}

// GetSlotHistory returns the user's past slots, newest first
func GetSlotHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := database.Database.Db
	query := db.Model(&models.Slot{}).Where("user_id = ?", userId)

	var total int64
	query.Count(&total)

	var slots []models.Slot
	if err := query.
		Order("booked_for DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot history fetched!", fiber.Map{
		"slots": slots,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
