// Package reminder periodically nudges residents about packages that have
// been waiting at the front desk for too long.
package reminder

import (
	"context"
	"log"
	"time"

	"portaria-backend/config"
	"portaria-backend/internal/model"
	"portaria-backend/internal/notification"
)

// PendingLister returns deliveries still pending that were registered
// before the cutoff. Implemented by the remote store; the reminder loop
// is a server-side concern and does not use the local cache fallback.
type PendingLister interface {
	PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Delivery, error)
}

// Enqueuer hands messages to the notification worker pool.
type Enqueuer interface {
	Enqueue(msg notification.Message)
}

// Service runs the reminder loop.
type Service struct {
	cfg    config.ReminderConfig
	lister PendingLister
	pool   Enqueuer
}

// NewService creates a reminder service.
func NewService(cfg config.ReminderConfig, lister PendingLister, pool Enqueuer) *Service {
	return &Service{cfg: cfg, lister: lister, pool: pool}
}

// Run starts the reminder loop and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Reminder loop is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder service...")

	s.RemindOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			s.RemindOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// RemindOnce performs a single reminder sweep.
func (s *Service) RemindOnce(ctx context.Context) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -s.cfg.PendingAfterDays)

	overdue, err := s.lister.PendingBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Error listing overdue deliveries: %v", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	log.Printf("Dispatching reminders for %d overdue deliveries", len(overdue))
	for _, d := range overdue {
		s.pool.Enqueue(notification.NewReminderMessage(d, now))
	}
}
