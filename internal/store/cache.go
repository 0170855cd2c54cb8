package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portaria-backend/internal/model"
)

// cachedDelivery is one row of the local mirror: the pickup code as key
// and a JSON snapshot of the delivery (resident included) as payload.
type cachedDelivery struct {
	PickupCode string    `gorm:"primaryKey;size:16"`
	Status     string    `gorm:"size:16;not null"`
	Payload    []byte    `gorm:"not null"`
	StoredAt   time.Time `gorm:"not null"`
}

func (cachedDelivery) TableName() string { return "cached_deliveries" }

// SqliteCache is the local fallback copy of delivery records, backed by a
// SQLite file next to the process. At most one mutator per process; a
// mutex serializes writes on top of SQLite's own locking.
type SqliteCache struct {
	mu sync.Mutex
	db *gorm.DB
}

// OpenSqliteCache opens (or creates) the cache file and migrates its schema.
func OpenSqliteCache(path string) (*SqliteCache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache %q: %w", path, err)
	}
	if err := db.AutoMigrate(&cachedDelivery{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}
	return &SqliteCache{db: db}, nil
}

// ReadAll returns every cached delivery in stored order.
func (c *SqliteCache) ReadAll(ctx context.Context) ([]model.Delivery, error) {
	var rows []cachedDelivery
	if err := c.db.WithContext(ctx).Order("stored_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read local cache: %w", err)
	}

	deliveries := make([]model.Delivery, 0, len(rows))
	for _, row := range rows {
		var d model.Delivery
		if err := json.Unmarshal(row.Payload, &d); err != nil {
			return nil, fmt.Errorf("corrupt cache entry for code %q: %w", row.PickupCode, err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// Put stores or replaces the snapshot for the delivery's pickup code.
func (c *SqliteCache) Put(ctx context.Context, d model.Delivery) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode delivery for cache: %w", err)
	}

	row := cachedDelivery{
		PickupCode: d.PickupCode,
		Status:     d.Status,
		Payload:    payload,
		StoredAt:   time.Now().UTC(),
	}
	if err := c.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to write local cache: %w", err)
	}
	return nil
}

// MarkWithdrawn mirrors a committed withdrawal into the cached snapshot.
// A missing entry is not an error; the cache only mirrors what it has.
func (c *SqliteCache) MarkWithdrawn(ctx context.Context, pickupCode, notes string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var row cachedDelivery
	err := c.db.WithContext(ctx).Where("pickup_code = ?", pickupCode).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache entry %q: %w", pickupCode, err)
	}

	var d model.Delivery
	if err := json.Unmarshal(row.Payload, &d); err != nil {
		return fmt.Errorf("corrupt cache entry for code %q: %w", pickupCode, err)
	}

	d.Status = model.StatusWithdrawn
	d.WithdrawnAt = &at
	d.WithdrawalNotes = notes

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode delivery for cache: %w", err)
	}
	row.Status = model.StatusWithdrawn
	row.Payload = payload

	if err := c.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update cache entry %q: %w", pickupCode, err)
	}
	return nil
}
