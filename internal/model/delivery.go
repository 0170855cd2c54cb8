package model

import "time"

// Delivery status values. A delivery transitions pending -> withdrawn
// exactly once and never reverses.
const (
	StatusPending   = "pending"
	StatusWithdrawn = "withdrawn"
)

// Delivery represents a package awaiting or having completed pickup.
type Delivery struct {
	ID              int64  `gorm:"primaryKey"`
	CondominiumID   int64  `gorm:"index;not null"`
	ResidentID      int64  `gorm:"index;not null"`
	PickupCode      string `gorm:"size:16;index;not null"`
	PhotoURL        string `gorm:"size:512"` // evidence image reference, not owned
	Notes           string
	Status          string    `gorm:"size:16;not null;default:pending"`
	RegisteredAt    time.Time `gorm:"not null;index"`
	WithdrawnAt     *time.Time
	WithdrawalNotes string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Associations
	Resident    Resident    `gorm:"constraint:OnDelete:CASCADE"`
	Condominium Condominium `gorm:"constraint:OnDelete:CASCADE"`
}

// Pending reports whether the delivery is still awaiting pickup.
func (d Delivery) Pending() bool {
	return d.Status == StatusPending
}
