package model

import "time"

// PushSubscription holds a resident's browser push subscription. When
// present it serves as the last notification channel in the fallback chain.
type PushSubscription struct {
	Endpoint   string    `gorm:"primaryKey"`
	P256DH     string    `gorm:"column:p256dh;not null"`
	Auth       string    `gorm:"not null"`
	ResidentID int64     `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"not null"`

	// Associations
	Resident Resident `gorm:"constraint:OnDelete:CASCADE"`
}
