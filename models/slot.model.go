package models

import (
	"time"

	"gorm.io/gorm"
)

// SlotStatus defines the lifecycle of a booked ad slot
type SlotStatus string

const (
	SlotStatusBooked  SlotStatus = "booked"  // paid for, waiting for the window to close
	SlotStatusLive    SlotStatus = "live"    // earning day in progress
	SlotStatusSettled SlotStatus = "settled" // principal + return credited back
)

// Slot is a daily ad slot booked against a user's social account.
// Booking is only allowed inside the evening window; the scheduler
// moves slots through booked -> live -> settled.
type Slot struct {
	gorm.Model
	UserID     uint       `gorm:"not null;index" json:"userId"`
	Amount     float64    `gorm:"not null" json:"amount"`
	ReturnRate float64    `gorm:"not null" json:"returnRate"` // percent at booking time
	Status     SlotStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	BookedFor  time.Time  `gorm:"not null;index" json:"bookedFor"` // calendar day the slot runs on
	SettledAt  *time.Time `gorm:"default:NULL" json:"settledAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Slot) TableName() string {
	return "slots"
}
