package cache

import (
	"context"
	"sync"
	"time"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

// InMemoryCache implements Cache with a process-local snapshot. Suitable
// for single-instance deployments and tests.
type InMemoryCache struct {
	mu        sync.Mutex
	rows      []models.LedgerRow
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryCache creates an in-process Cache with the given TTL.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{ttl: ttl}
}

// GetRows returns the cached snapshot unless absent or expired.
func (c *InMemoryCache) GetRows(_ context.Context) ([]models.LedgerRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rows == nil || time.Now().After(c.expiresAt) {
		c.rows = nil
		return nil, false
	}

	// Copy so callers cannot mutate the cached snapshot.
	rows := make([]models.LedgerRow, len(c.rows))
	copy(rows, c.rows)
	return rows, true
}

// SetRows stores a snapshot, replacing any previous one.
func (c *InMemoryCache) SetRows(_ context.Context, rows []models.LedgerRow) {
	stored := make([]models.LedgerRow, len(rows))
	copy(stored, rows)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = stored
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached snapshot.
func (c *InMemoryCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
}
