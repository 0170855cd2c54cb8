package store

import (
	"context"
	"errors"
	"time"

	"portaria-backend/internal/model"
)

// Sentinel errors surfaced by the store layer. Handlers map these to
// user-facing responses; everything else is an internal failure.
var (
	// ErrNotFound means neither the remote store nor the local cache holds
	// a delivery for the given pickup code. A remote "no rows" answer is
	// trusted and produces ErrNotFound without consulting the cache.
	ErrNotFound = errors.New("delivery not found")

	// ErrAlreadyWithdrawn guards against double confirmation of the same code.
	ErrAlreadyWithdrawn = errors.New("delivery already withdrawn")

	// ErrStoreUnavailable means both the remote store and the local cache
	// failed; there is no further fallback.
	ErrStoreUnavailable = errors.New("remote store and local cache unavailable")
)

// RemoteStore is the authoritative durable backend. Absence of a record
// here is trusted; only remote failures fall through to the local cache.
type RemoteStore interface {
	CreatePending(ctx context.Context, d *model.Delivery) error
	HasPendingCode(ctx context.Context, code string) (bool, error)
	PendingByCondominium(ctx context.Context, condominiumID int64) ([]model.Delivery, error)
	PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Delivery, error)
	ByCode(ctx context.Context, code string) (*model.Delivery, error)
	MarkWithdrawn(ctx context.Context, code, notes string, at time.Time) (*model.Delivery, error)
	ResidentByID(ctx context.Context, id int64) (*model.Resident, error)
}

// LocalCache is the client-local mirror of delivery records, used as a
// staging copy at registration time and as a degraded read path when the
// remote store is unreachable.
type LocalCache interface {
	ReadAll(ctx context.Context) ([]model.Delivery, error)
	Put(ctx context.Context, d model.Delivery) error
	MarkWithdrawn(ctx context.Context, code, notes string, at time.Time) error
}
