package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string  `gorm:"default:''" json:"name"`
	Email            string  `gorm:"unique;not null" json:"email"`
	Mobile           string  `gorm:"default:''" json:"mobile"`
	Role             string  `gorm:"default:'USER'" json:"role"` // USER, ADMIN
	Password         string  `gorm:"not null" json:"-"`
	WalletBalance    float64 `gorm:"default:0" json:"walletBalance"`
	ReferralCode     string  `gorm:"type:varchar(20);uniqueIndex" json:"referralCode"`
	ReferredBy       *uint   `gorm:"index" json:"referredBy"`
	ReferralEarnings float64 `gorm:"default:0" json:"referralEarnings"`

	SocialPlatform string `gorm:"type:varchar(30);default:''" json:"socialPlatform"` // instagram, youtube, facebook
	SocialHandle   string `gorm:"type:varchar(100);default:''" json:"socialHandle"`

	LastLogin *time.Time `gorm:"default:NULL" json:"lastLogin"`
	IsDeleted bool       `gorm:"default:false" json:"isDeleted"`
}
