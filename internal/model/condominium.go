package model

import "time"

// Condominium represents one managed building complex.
type Condominium struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Residents []Resident `gorm:"foreignKey:CondominiumID"`
}
