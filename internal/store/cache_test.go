package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portaria-backend/internal/model"
)

func newTestCache(t *testing.T) *SqliteCache {
	cache, err := OpenSqliteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	return cache
}

func TestSqliteCache_PutAndReadAll(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := model.Delivery{
		CondominiumID: 1,
		ResidentID:    7,
		PickupCode:    "12345",
		Status:        model.StatusPending,
		Notes:         "fragile",
		RegisteredAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Resident:      model.Resident{ID: 7, Name: "Maria Souza", Unit: "1905", Block: "A"},
	}
	second := model.Delivery{
		CondominiumID: 1,
		ResidentID:    8,
		PickupCode:    "67890",
		Status:        model.StatusPending,
		RegisteredAt:  time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, cache.Put(ctx, first))
	require.NoError(t, cache.Put(ctx, second))

	deliveries, err := cache.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	// Stored order, and the snapshot keeps the resident association.
	assert.Equal(t, "12345", deliveries[0].PickupCode)
	assert.Equal(t, "Maria Souza", deliveries[0].Resident.Name)
	assert.Equal(t, "A-1905", deliveries[0].Resident.Apartment())
	assert.Equal(t, "67890", deliveries[1].PickupCode)
}

func TestSqliteCache_PutReplacesByCode(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	d := model.Delivery{PickupCode: "12345", Status: model.StatusPending, Notes: "first"}
	require.NoError(t, cache.Put(ctx, d))

	d.Notes = "second"
	require.NoError(t, cache.Put(ctx, d))

	deliveries, err := cache.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "second", deliveries[0].Notes)
}

func TestSqliteCache_MarkWithdrawn(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 22, 14, 30, 0, 0, time.UTC)

	require.NoError(t, cache.Put(ctx, model.Delivery{PickupCode: "12345", Status: model.StatusPending}))
	require.NoError(t, cache.MarkWithdrawn(ctx, "12345", "picked up by spouse", at))

	deliveries, err := cache.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, model.StatusWithdrawn, deliveries[0].Status)
	assert.Equal(t, "picked up by spouse", deliveries[0].WithdrawalNotes)
	require.NotNil(t, deliveries[0].WithdrawnAt)
	assert.True(t, deliveries[0].WithdrawnAt.Equal(at))
}

func TestSqliteCache_MarkWithdrawnMissingEntry(t *testing.T) {
	cache := newTestCache(t)

	// The cache only mirrors what it has; a missing code is not an error.
	err := cache.MarkWithdrawn(context.Background(), "00000", "", time.Now().UTC())
	assert.NoError(t, err)
}

func TestSqliteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	cache, err := OpenSqliteCache(path)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, model.Delivery{PickupCode: "12345", Status: model.StatusPending}))

	reopened, err := OpenSqliteCache(path)
	require.NoError(t, err)

	deliveries, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "12345", deliveries[0].PickupCode)
}
