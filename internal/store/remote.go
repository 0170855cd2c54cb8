package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"portaria-backend/internal/model"
)

// gormRemote implements RemoteStore on the shared database using GORM.
type gormRemote struct {
	db *gorm.DB
}

// NewGormRemote creates the GORM-backed authoritative store.
func NewGormRemote(db *gorm.DB) RemoteStore {
	return &gormRemote{db: db}
}

// CreatePending inserts a freshly registered delivery.
func (s *gormRemote) CreatePending(ctx context.Context, d *model.Delivery) error {
	d.Status = model.StatusPending
	if d.RegisteredAt.IsZero() {
		d.RegisteredAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}

// HasPendingCode reports whether a pending delivery already uses the code.
// Codes are only unique among pending deliveries; withdrawn ones may reuse.
func (s *gormRemote) HasPendingCode(ctx context.Context, pickupCode string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Delivery{}).
		Where("pickup_code = ? AND status = ?", pickupCode, model.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending code: %w", err)
	}
	return count > 0, nil
}

// PendingByCondominium returns the pending deliveries for one condominium,
// most recent first.
func (s *gormRemote) PendingByCondominium(ctx context.Context, condominiumID int64) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := s.db.WithContext(ctx).
		Preload("Resident").
		Preload("Condominium").
		Where("condominium_id = ? AND status = ?", condominiumID, model.StatusPending).
		Order("registered_at DESC").
		Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deliveries: %w", err)
	}
	return deliveries, nil
}

// PendingBefore returns all deliveries still pending that were registered
// before the cutoff, across condominiums. Used by the reminder loop.
func (s *gormRemote) PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := s.db.WithContext(ctx).
		Preload("Resident").
		Preload("Condominium").
		Where("status = ? AND registered_at < ?", model.StatusPending, cutoff).
		Order("registered_at ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue deliveries: %w", err)
	}
	return deliveries, nil
}

// ByCode looks up a delivery by exact pickup code. gorm.ErrRecordNotFound
// becomes ErrNotFound so callers can tell "no rows" from a query failure.
func (s *gormRemote) ByCode(ctx context.Context, pickupCode string) (*model.Delivery, error) {
	var d model.Delivery
	err := s.db.WithContext(ctx).
		Preload("Resident").
		Preload("Condominium").
		Where("pickup_code = ?", pickupCode).
		Order("registered_at DESC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery by code: %w", err)
	}
	return &d, nil
}

// ResidentByID loads one resident with their condominium.
func (s *gormRemote) ResidentByID(ctx context.Context, id int64) (*model.Resident, error) {
	var r model.Resident
	err := s.db.WithContext(ctx).Preload("Condominium").First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resident %d: %w", id, err)
	}
	return &r, nil
}

// MarkWithdrawn re-reads the record by code, rejects an already withdrawn
// delivery, then flips the status with a conditional update. The status
// check and the update race only against the WHERE clause: a concurrent
// confirmation that wins leaves RowsAffected at zero here, which is
// reported as ErrAlreadyWithdrawn rather than a second success.
func (s *gormRemote) MarkWithdrawn(ctx context.Context, pickupCode, notes string, at time.Time) (*model.Delivery, error) {
	var d model.Delivery
	err := s.db.WithContext(ctx).
		Where("pickup_code = ?", pickupCode).
		Order("registered_at DESC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to re-read delivery %q: %w", pickupCode, err)
	}

	if d.Status == model.StatusWithdrawn {
		return nil, ErrAlreadyWithdrawn
	}

	res := s.db.WithContext(ctx).Model(&model.Delivery{}).
		Where("id = ? AND status = ?", d.ID, model.StatusPending).
		Updates(map[string]any{
			"status":           model.StatusWithdrawn,
			"withdrawn_at":     at,
			"withdrawal_notes": notes,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark delivery %q withdrawn: %w", pickupCode, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent confirmation.
		return nil, ErrAlreadyWithdrawn
	}

	d.Status = model.StatusWithdrawn
	d.WithdrawnAt = &at
	d.WithdrawalNotes = notes
	return &d, nil
}
