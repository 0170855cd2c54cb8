package service

import (
	"context"
	"fmt"
	"time"

	"portaria-backend/internal/code"
	"portaria-backend/internal/model"
	"portaria-backend/internal/notification"
)

// A generated code may collide with a pending delivery's code; the
// generator is simply rolled again. More retries than this means the code
// space is close to exhausted and registration should fail loudly.
const maxCodeAttempts = 5

// RegistrationStore is the slice of the store adapter registration needs.
type RegistrationStore interface {
	Register(ctx context.Context, d *model.Delivery) error
	HasPendingCode(ctx context.Context, pickupCode string) (bool, error)
	ResidentByID(ctx context.Context, id int64) (*model.Resident, error)
}

// Enqueuer hands the arrival notice to the notification worker pool.
type Enqueuer interface {
	Enqueue(msg notification.Message)
}

// RegisterRequest carries the staff input for one incoming package.
type RegisterRequest struct {
	ResidentID int64
	Notes      string
	PhotoURL   string
}

// Registration creates deliveries: it allocates a pickup code unique
// among pending deliveries, persists the record, and queues the arrival
// notice for asynchronous dispatch.
type Registration struct {
	store      RegistrationStore
	pool       Enqueuer
	codeLength int
	generate   func(length int) string
}

// NewRegistration creates the registration service.
func NewRegistration(s RegistrationStore, pool Enqueuer, codeLength int) *Registration {
	return &Registration{
		store:      s,
		pool:       pool,
		codeLength: codeLength,
		generate:   code.Generate,
	}
}

// Register records an incoming package for the resident.
func (s *Registration) Register(ctx context.Context, req RegisterRequest) (*model.Delivery, error) {
	resident, err := s.store.ResidentByID(ctx, req.ResidentID)
	if err != nil {
		return nil, err
	}

	pickupCode, err := s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &model.Delivery{
		CondominiumID: resident.CondominiumID,
		ResidentID:    resident.ID,
		PickupCode:    pickupCode,
		Notes:         req.Notes,
		PhotoURL:      req.PhotoURL,
		RegisteredAt:  now,
	}
	if err := s.store.Register(ctx, d); err != nil {
		return nil, err
	}

	d.Resident = *resident
	d.Condominium = resident.Condominium
	s.pool.Enqueue(notification.NewDeliveryMessage(*d, now))
	return d, nil
}

// allocateCode rolls the generator until the code is free among pending
// deliveries.
func (s *Registration) allocateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		c := s.generate(s.codeLength)
		taken, err := s.store.HasPendingCode(ctx, c)
		if err != nil {
			return "", err
		}
		if !taken {
			return c, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique pickup code after %d attempts", maxCodeAttempts)
}
