// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

// ErrNotFound is returned when an operation targets an expense that does
// not exist in the store.
var ErrNotFound = errors.New("expense not found")

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends without changing the
// service layer, and keeps every write inside a single transaction so
// readers never observe a partially written expense.
type Store interface {
	// CreateExpense persists an expense together with its splits in one
	// atomic transaction. The expense and split ID fields are populated
	// from the store's generated identifiers.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []models.Split) error

	// DeleteExpense removes an expense and all of its splits atomically,
	// children before parent. Returns ErrNotFound when no expense with
	// the given ID exists. Identifiers of deleted rows are never reused.
	DeleteExpense(ctx context.Context, id int64) error

	// ListLedgerRows returns the full ledger snapshot: one row per split
	// joined with its expense, ordered by expense ID ascending and split
	// insertion order within an expense.
	ListLedgerRows(ctx context.Context) ([]models.LedgerRow, error)

	// CreateUser inserts a new account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves an account by email, or (nil, nil) when
	// no such account exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves an account by ID, or (nil, nil) when no such
	// account exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
