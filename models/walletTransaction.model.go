package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionType defines the type of wallet transaction
type TransactionType string

const (
	TransactionTypeDeposit       TransactionType = "deposit"
	TransactionTypeWithdrawal    TransactionType = "withdrawal"
	TransactionTypeSlotBooking   TransactionType = "slot_booking"
	TransactionTypeSlotReturn    TransactionType = "slot_return"
	TransactionTypeReferralBonus TransactionType = "referral_bonus"
)

// TransactionStatus defines the status of a transaction.
// A transaction is created as pending and moves to exactly one
// terminal state; there is no transition out of a terminal state.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// WalletTransaction tracks all wallet movements for a user.
// For deposits the Razorpay columns tie the row to the gateway order:
// RazorpayOrderID is set at creation and never changes, payment id and
// signature are written only when the row transitions to completed.
type WalletTransaction struct {
	gorm.Model
	UserID          uint              `gorm:"not null;index" json:"userId"`
	TransactionType TransactionType   `gorm:"type:varchar(30);not null" json:"transactionType"`
	Amount          float64           `gorm:"not null" json:"amount"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Description     string            `gorm:"type:text" json:"description"`

	// Payment gateway details (deposits only)
	RazorpayOrderID    string         `gorm:"type:varchar(100);uniqueIndex:idx_wallet_txns_order_id,where:razorpay_order_id <> ''" json:"razorpayOrderId"`
	RazorpayPaymentID  string         `gorm:"type:varchar(100);index" json:"razorpayPaymentId"`
	RazorpaySignature  string         `gorm:"type:varchar(255)" json:"razorpaySignature"`
	GatewayResponseRaw datatypes.JSON `gorm:"type:json" json:"-"` // raw order payload from the gateway

	// Withdrawal details
	UpiID string `gorm:"type:varchar(100)" json:"upiId,omitempty"`

	// Reference details (slot bookings / returns / referral bonuses)
	ReferenceType string `gorm:"type:varchar(30)" json:"referenceType,omitempty"` // slot, user
	ReferenceID   uint   `gorm:"default:0" json:"referenceId,omitempty"`

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	// Relations - omit in JSON by default
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
