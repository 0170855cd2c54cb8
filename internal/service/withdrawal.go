package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"portaria-backend/internal/code"
	"portaria-backend/internal/model"
	"portaria-backend/internal/notification"
	"portaria-backend/internal/store"
)

// State of one withdrawal attempt. A new search supersedes any prior
// result (last-write-wins on the found slot).
type State string

const (
	StateIdle       State = "idle"
	StateSearching  State = "searching"
	StateFound      State = "found"
	StateConfirming State = "confirming"
	StateCommitted  State = "committed"
	StateRejected   State = "rejected"
)

// Errors owned by the workflow itself; store errors pass through unchanged.
var (
	// ErrInvalidCode is returned before any store I/O when the submitted
	// code does not match the generator's format.
	ErrInvalidCode = errors.New("invalid pickup code format")

	// ErrNoDeliverySelected means Confirm was called without a successful
	// search first.
	ErrNoDeliverySelected = errors.New("no delivery selected; search by code first")
)

// WithdrawalStore is the slice of the store adapter the workflow needs.
type WithdrawalStore interface {
	FindByCode(ctx context.Context, pickupCode string) (*model.Delivery, error)
	MarkWithdrawn(ctx context.Context, pickupCode, notes string) (*model.Delivery, error)
}

// Dispatcher sends the confirmation notice; the outcome is awaited inline
// because it is part of the user-facing result.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg notification.Message) notification.Outcome
}

// Result is the outcome of a committed withdrawal. Degraded means the
// store mutation committed but no notification channel accepted the
// message; the commit stands regardless.
type Result struct {
	Delivery *model.Delivery
	Notify   notification.Outcome
	Degraded bool
}

// Withdrawal orchestrates one operator's search/confirm cycle:
// Idle -> Searching -> Found -> Confirming -> Committed or Rejected.
// One cycle at a time; the mutex only guards against misuse, the real
// concurrency control is the store's conditional update.
type Withdrawal struct {
	mu         sync.Mutex
	codeLength int
	store      WithdrawalStore
	dispatcher Dispatcher

	state State
	found *model.Delivery
}

// NewWithdrawal creates a workflow in the Idle state.
func NewWithdrawal(codeLength int, s WithdrawalStore, d Dispatcher) *Withdrawal {
	return &Withdrawal{codeLength: codeLength, store: s, dispatcher: d, state: StateIdle}
}

// State returns the current workflow state.
func (w *Withdrawal) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Reset returns the workflow to Idle for the next code.
func (w *Withdrawal) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateIdle
	w.found = nil
}

// SubmitCode validates the code format and looks the delivery up. A bad
// format never reaches a store; a failed lookup returns the workflow to
// Idle so the operator can retry with a different code.
func (w *Withdrawal) SubmitCode(ctx context.Context, pickupCode string) (*model.Delivery, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !code.Validate(pickupCode, w.codeLength) {
		w.state = StateIdle
		return nil, fmt.Errorf("%w: expected %d digits", ErrInvalidCode, w.codeLength)
	}

	w.state = StateSearching
	d, err := w.store.FindByCode(ctx, pickupCode)
	if err != nil {
		w.state = StateIdle
		w.found = nil
		return nil, err
	}

	w.state = StateFound
	w.found = d
	return d, nil
}

// Confirm marks the found delivery withdrawn and dispatches the
// confirmation notice. The store mutation is the durability boundary: a
// degraded or failed notification never rolls the commit back. A store
// failure other than AlreadyWithdrawn returns the workflow to Found so
// the operator can retry the confirmation.
func (w *Withdrawal) Confirm(ctx context.Context, notes string) (*Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateFound || w.found == nil {
		return nil, ErrNoDeliverySelected
	}

	w.state = StateConfirming
	d, err := w.store.MarkWithdrawn(ctx, w.found.PickupCode, notes)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyWithdrawn) {
			w.state = StateRejected
			return nil, err
		}
		w.state = StateFound
		return nil, err
	}

	// MarkWithdrawn returns the bare record; carry the associations from
	// the search result so the notice can be rendered.
	d.Resident = w.found.Resident
	d.Condominium = w.found.Condominium
	w.state = StateCommitted
	w.found = nil

	at := *d.WithdrawnAt
	outcome := w.dispatcher.Dispatch(ctx, notification.NewWithdrawalMessage(*d, at))
	return &Result{
		Delivery: d,
		Notify:   outcome,
		Degraded: !outcome.Success,
	}, nil
}
