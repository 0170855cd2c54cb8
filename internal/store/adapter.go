package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"portaria-backend/internal/model"
)

// Adapter hides the two physical stores behind one read/write interface.
// The remote store is authoritative; the local cache answers only when the
// remote store fails, and mirrors every successful mutation.
type Adapter struct {
	remote RemoteStore
	cache  LocalCache
}

// NewAdapter wires the authoritative store and the local cache together.
func NewAdapter(remote RemoteStore, cache LocalCache) *Adapter {
	return &Adapter{remote: remote, cache: cache}
}

// Register persists a new pending delivery remotely and mirrors it into
// the local cache. A cache write failure does not undo the registration.
func (a *Adapter) Register(ctx context.Context, d *model.Delivery) error {
	if err := a.remote.CreatePending(ctx, d); err != nil {
		return err
	}
	if err := a.cache.Put(ctx, *d); err != nil {
		log.Printf("Warning: could not mirror delivery %q into local cache: %v", d.PickupCode, err)
	}
	return nil
}

// HasPendingCode delegates the insert-time collision check to the remote store.
func (a *Adapter) HasPendingCode(ctx context.Context, pickupCode string) (bool, error) {
	return a.remote.HasPendingCode(ctx, pickupCode)
}

// ResidentByID delegates to the remote store; residents are never cached.
func (a *Adapter) ResidentByID(ctx context.Context, id int64) (*model.Resident, error) {
	return a.remote.ResidentByID(ctx, id)
}

// ListPending produces the reconciled pending set for one condominium:
// remote entries first (most recent first), then cache-only entries in
// stored order. When the remote query fails the cache alone answers;
// ErrStoreUnavailable is returned only when both sides fail.
func (a *Adapter) ListPending(ctx context.Context, condominiumID int64) ([]model.Delivery, error) {
	remote, remoteErr := a.remote.PendingByCondominium(ctx, condominiumID)
	if remoteErr != nil {
		log.Printf("Warning: remote pending query failed, falling back to local cache: %v", remoteErr)
	}

	local, cacheErr := a.cache.ReadAll(ctx)
	if cacheErr != nil {
		if remoteErr != nil {
			return nil, fmt.Errorf("%w: remote: %v, cache: %v", ErrStoreUnavailable, remoteErr, cacheErr)
		}
		log.Printf("Warning: local cache read failed, serving remote entries only: %v", cacheErr)
		return remote, nil
	}

	var scoped []model.Delivery
	for _, d := range local {
		if d.CondominiumID == condominiumID {
			scoped = append(scoped, d)
		}
	}

	if remoteErr != nil {
		return mergePending(nil, scoped), nil
	}
	return mergePending(remote, scoped), nil
}

// FindByCode resolves a pickup code to a delivery. The remote answer is
// authoritative: a remote "no rows" result returns ErrNotFound without
// consulting the cache. Only a remote *failure* falls through to the
// local cache.
func (a *Adapter) FindByCode(ctx context.Context, pickupCode string) (*model.Delivery, error) {
	d, err := a.remote.ByCode(ctx, pickupCode)
	if err == nil {
		return d, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}

	log.Printf("Warning: remote lookup for code %q failed, falling back to local cache: %v", pickupCode, err)
	local, cacheErr := a.cache.ReadAll(ctx)
	if cacheErr != nil {
		return nil, fmt.Errorf("%w: remote: %v, cache: %v", ErrStoreUnavailable, err, cacheErr)
	}
	for i := range local {
		if local[i].PickupCode == pickupCode {
			return &local[i], nil
		}
	}
	return nil, ErrNotFound
}

// MarkWithdrawn confirms a withdrawal: conditional update on the remote
// store first, then the same mutation mirrored into the cache. If the
// remote step fails the cache is left untouched, so a retry sees
// consistent state on both sides.
func (a *Adapter) MarkWithdrawn(ctx context.Context, pickupCode, notes string) (*model.Delivery, error) {
	at := time.Now().UTC()
	d, err := a.remote.MarkWithdrawn(ctx, pickupCode, notes, at)
	if err != nil {
		return nil, err
	}
	if cacheErr := a.cache.MarkWithdrawn(ctx, pickupCode, notes, at); cacheErr != nil {
		log.Printf("Warning: could not mirror withdrawal of %q into local cache: %v", pickupCode, cacheErr)
	}
	return d, nil
}
