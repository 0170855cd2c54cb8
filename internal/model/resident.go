package model

import "time"

// Resident represents a person living in a condominium unit.
type Resident struct {
	ID            int64  `gorm:"primaryKey"`
	CondominiumID int64  `gorm:"index;not null"`
	Name          string `gorm:"size:256;not null"`
	Phone         string `gorm:"size:32;not null"`
	Role          string `gorm:"size:64"` // e.g. owner, tenant; optional
	Block         string `gorm:"size:16"` // optional, not every condominium has blocks
	Unit          string `gorm:"size:16;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Associations
	Condominium Condominium `gorm:"constraint:OnDelete:CASCADE"`
}

// Apartment renders the resident's location label ("A-1905" or "1905").
func (r Resident) Apartment() string {
	if r.Block != "" {
		return r.Block + "-" + r.Unit
	}
	return r.Unit
}
