package utils

import (
	"coinzy/database"
	"coinzy/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SLOT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartSchedulers wires the background jobs: slot lifecycle ticks and
// expiry of deposits that never got verified.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 1m", ProcessSlotLifecycle)
	c.AddFunc("@every 10m", ExpireStalePendingDeposits)

	c.Start()
	logScheduler("Schedulers started")
	return c
}

// A slot booked for day D goes live when the booking window closes
// (D 20:00) and settles one earning day later (D+1 20:00).
const (
	goLiveAfter = 20 * time.Hour
	settleAfter = 44 * time.Hour
)

// ProcessSlotLifecycle moves booked slots live once the booking window
// closes and settles live slots after their earning day, crediting the
// principal plus the daily return.
func ProcessSlotLifecycle() {
	db := database.Database.Db
	currentTime := time.Now()

	// booked -> live
	res := db.Model(&models.Slot{}).
		Where("status = ? AND booked_for <= ?", models.SlotStatusBooked, currentTime.Add(-goLiveAfter)).
		Update("status", models.SlotStatusLive)
	if res.Error != nil {
		logScheduler("Error publishing booked slots: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("%d slot(s) went live", res.RowsAffected))
	}

	// live -> settled, one at a time so a single bad row cannot block the rest
	var dueSlots []models.Slot
	if err := db.Where("status = ? AND booked_for <= ?", models.SlotStatusLive, currentTime.Add(-settleAfter)).
		Find(&dueSlots).Error; err != nil {
		logScheduler("Error fetching due slots: " + err.Error())
		return
	}

	for _, slot := range dueSlots {
		if err := settleSlot(db, slot, currentTime); err != nil {
			logScheduler(fmt.Sprintf("Error settling slot %d: %v", slot.ID, err))
		}
	}
}

// settleSlot credits principal + return and marks the slot settled. The
// status predicate keeps a concurrent tick from settling the same slot twice.
func settleSlot(db *gorm.DB, slot models.Slot, settledAt time.Time) error {
	res := db.Model(&models.Slot{}).
		Where("id = ? AND status = ?", slot.ID, models.SlotStatusLive).
		Updates(map[string]interface{}{
			"status":     models.SlotStatusSettled,
			"settled_at": settledAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil // already settled by another tick
	}

	payout := slot.Amount * (1 + slot.ReturnRate/100)

	if err := db.Model(&models.User{}).Where("id = ?", slot.UserID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", payout)).Error; err != nil {
		return err
	}

	transaction := models.WalletTransaction{
		UserID:          slot.UserID,
		TransactionType: models.TransactionTypeSlotReturn,
		Amount:          payout,
		Status:          models.TransactionStatusCompleted,
		Description:     fmt.Sprintf("Slot settlement: principal + %.1f%% return", slot.ReturnRate),
		ReferenceType:   "slot",
		ReferenceID:     slot.ID,
	}
	if err := db.Create(&transaction).Error; err != nil {
		return err
	}

	logScheduler(fmt.Sprintf("Slot %d settled, ₹%.2f credited to user %d", slot.ID, payout, slot.UserID))
	return nil
}

// ExpireStalePendingDeposits cancels deposit transactions whose gateway
// order was never paid. Unpaid Razorpay orders lapse on their own; the
// local row just needs its terminal state.
func ExpireStalePendingDeposits() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	res := db.Model(&models.WalletTransaction{}).
		Where("transaction_type = ? AND status = ? AND created_at < ?",
			models.TransactionTypeDeposit, models.TransactionStatusPending, cutoff).
		Update("status", models.TransactionStatusCancelled)
	if res.Error != nil {
		logScheduler("Error expiring pending deposits: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("%d stale pending deposit(s) cancelled", res.RowsAffected))
	}
}
