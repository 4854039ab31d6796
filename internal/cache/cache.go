// Package cache provides read caching for ledger snapshots. Reads of the
// full ledger are far more frequent than writes, so the service keeps the
// latest row snapshot here and invalidates it on every create or delete.
// A TTL bounds staleness in case an invalidation is lost.
package cache

import (
	"context"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

// Cache stores the most recent full ledger snapshot.
type Cache interface {
	// GetRows returns the cached snapshot and whether one was present.
	GetRows(ctx context.Context) ([]models.LedgerRow, bool)

	// SetRows stores a snapshot, replacing any previous one.
	SetRows(ctx context.Context, rows []models.LedgerRow)

	// Invalidate drops the cached snapshot.
	Invalidate(ctx context.Context)
}
