package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portaria-backend/internal/model"
	"portaria-backend/internal/notification"
	"portaria-backend/internal/store"
)

// fakeRegistrationStore tracks created deliveries and scripts code collisions.
type fakeRegistrationStore struct {
	resident    *model.Resident
	residentErr error
	takenCodes  map[string]bool
	created     []model.Delivery
	registerErr error
}

func (f *fakeRegistrationStore) Register(ctx context.Context, d *model.Delivery) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	d.Status = model.StatusPending
	f.created = append(f.created, *d)
	return nil
}

func (f *fakeRegistrationStore) HasPendingCode(ctx context.Context, pickupCode string) (bool, error) {
	return f.takenCodes[pickupCode], nil
}

func (f *fakeRegistrationStore) ResidentByID(ctx context.Context, id int64) (*model.Resident, error) {
	if f.residentErr != nil {
		return nil, f.residentErr
	}
	return f.resident, nil
}

// fakeEnqueuer collects queued notices.
type fakeEnqueuer struct {
	messages []notification.Message
}

func (f *fakeEnqueuer) Enqueue(msg notification.Message) {
	f.messages = append(f.messages, msg)
}

func testResident() *model.Resident {
	return &model.Resident{
		ID:            7,
		CondominiumID: 1,
		Name:          "Maria Souza",
		Phone:         "5511999990000",
		Block:         "A",
		Unit:          "1905",
		Condominium:   model.Condominium{ID: 1, Name: "Residencial Aurora"},
	}
}

func TestRegistration_Register(t *testing.T) {
	st := &fakeRegistrationStore{resident: testResident()}
	pool := &fakeEnqueuer{}
	svc := NewRegistration(st, pool, 5)

	d, err := svc.Register(context.Background(), RegisterRequest{
		ResidentID: 7,
		Notes:      "caixa grande",
		PhotoURL:   "https://cdn.example.com/p/1.jpg",
	})

	require.NoError(t, err)
	assert.Len(t, d.PickupCode, 5)
	assert.Equal(t, model.StatusPending, d.Status)
	assert.Equal(t, int64(1), d.CondominiumID)
	assert.Equal(t, "Maria Souza", d.Resident.Name)
	assert.False(t, d.RegisteredAt.IsZero())

	require.Len(t, st.created, 1)
	require.Len(t, pool.messages, 1)
	assert.Equal(t, notification.TypeDelivery, pool.messages[0].Type)
	assert.Contains(t, pool.messages[0].Body, d.PickupCode)
}

func TestRegistration_CodeCollisionRollsAgain(t *testing.T) {
	st := &fakeRegistrationStore{resident: testResident(), takenCodes: map[string]bool{"11111": true}}
	svc := NewRegistration(st, &fakeEnqueuer{}, 5)

	// First roll collides with a pending delivery, second is free.
	codes := []string{"11111", "22222"}
	svc.generate = func(length int) string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	d, err := svc.Register(context.Background(), RegisterRequest{ResidentID: 7})

	require.NoError(t, err)
	assert.Equal(t, "22222", d.PickupCode)
}

func TestRegistration_CodeSpaceExhausted(t *testing.T) {
	st := &fakeRegistrationStore{resident: testResident(), takenCodes: map[string]bool{"11111": true}}
	pool := &fakeEnqueuer{}
	svc := NewRegistration(st, pool, 5)
	svc.generate = func(length int) string { return "11111" }

	_, err := svc.Register(context.Background(), RegisterRequest{ResidentID: 7})

	assert.Error(t, err)
	assert.Empty(t, st.created)
	assert.Empty(t, pool.messages)
}

func TestRegistration_UnknownResident(t *testing.T) {
	st := &fakeRegistrationStore{residentErr: store.ErrNotFound}
	pool := &fakeEnqueuer{}
	svc := NewRegistration(st, pool, 5)

	_, err := svc.Register(context.Background(), RegisterRequest{ResidentID: 99})

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, pool.messages)
}

func TestRegistration_StoreFailureSkipsNotice(t *testing.T) {
	st := &fakeRegistrationStore{resident: testResident(), registerErr: errors.New("connection reset")}
	pool := &fakeEnqueuer{}
	svc := NewRegistration(st, pool, 5)

	_, err := svc.Register(context.Background(), RegisterRequest{ResidentID: 7})

	assert.Error(t, err)
	assert.Empty(t, pool.messages)
}
