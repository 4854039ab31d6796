// Package service holds the application services behind the HTTP handlers.
// Services validate input, orchestrate the calculator and storage, and keep
// the ledger cache and event stream in step with every write.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AyushiKadu/Expense-Tracker/internal/cache"
	"github.com/AyushiKadu/Expense-Tracker/internal/calculator"
	"github.com/AyushiKadu/Expense-Tracker/internal/events"
	"github.com/AyushiKadu/Expense-Tracker/internal/models"
	"github.com/AyushiKadu/Expense-Tracker/internal/storage"
)

// ErrValidation marks errors caused by bad input rather than system failure.
// Handlers map it to a 400 response.
var ErrValidation = errors.New("validation failed")

const dateLayout = "2006-01-02"

// LedgerService records, deletes and reports shared expenses.
type LedgerService struct {
	store     storage.Store
	cache     cache.Cache
	publisher events.Publisher
	roster    []string
}

// NewLedgerService creates a LedgerService over the given store, cache and
// event publisher. The roster is the set of members an "All" split expands to.
func NewLedgerService(store storage.Store, c cache.Cache, publisher events.Publisher, roster []string) *LedgerService {
	return &LedgerService{
		store:     store,
		cache:     c,
		publisher: publisher,
		roster:    roster,
	}
}

// CreateExpenseInput is the raw, unvalidated form input for a new expense.
type CreateExpenseInput struct {
	Name     string
	Amount   string
	Users    string
	Category string
	Date     string
}

// CreateExpense validates the input, splits the amount across the resolved
// users and records the expense with one split row per user. Returns the
// stored expense and its splits.
func (s *LedgerService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, []models.Split, error) {
	if input.Name == "" {
		return nil, nil, fmt.Errorf("%w: expense name is required", ErrValidation)
	}
	if input.Category == "" {
		return nil, nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return nil, nil, fmt.Errorf("%w: date must be a valid YYYY-MM-DD date, got '%s'", ErrValidation, input.Date)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid amount '%s'", ErrValidation, input.Amount)
	}

	shares, err := calculator.Split(amount, input.Users, s.roster)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	expense := &models.Expense{
		Name:        input.Name,
		TotalAmount: amount,
		Category:    input.Category,
		Date:        input.Date,
	}
	splits := make([]models.Split, len(shares))
	for i, share := range shares {
		splits[i] = models.Split{
			User:        share.User,
			SplitAmount: share.Amount,
		}
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		return nil, nil, fmt.Errorf("create expense: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.publishCreated(ctx, expense, splits)

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"name", expense.Name,
		"amount", expense.TotalAmount,
		"users", len(splits),
	)
	return expense, splits, nil
}

// DeleteExpense removes the expense and its splits. Returns
// storage.ErrNotFound when no expense has the given ID.
func (s *LedgerService) DeleteExpense(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: expense ID must be positive, got %d", ErrValidation, id)
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	s.cache.Invalidate(ctx)
	s.publishDeleted(ctx, id)

	slog.Info("Expense deleted", "expense_id", id)
	return nil
}

// LedgerReport is the full ledger view: every row plus derived totals.
type LedgerReport struct {
	Rows       []models.LedgerRow
	UserTotals []models.UserTotal
	GrandTotal decimal.Decimal
}

// FetchLedger returns every ledger row together with the grand total and
// per-user totals. When selectedUsers is non-empty the per-user totals are
// restricted to those users; rows and the grand total always cover the
// whole ledger.
func (s *LedgerService) FetchLedger(ctx context.Context, selectedUsers []string) (*LedgerReport, error) {
	rows, hit := s.cache.GetRows(ctx)
	if !hit {
		var err error
		rows, err = s.store.ListLedgerRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("list ledger rows: %w", err)
		}
		s.cache.SetRows(ctx, rows)
	}

	return &LedgerReport{
		Rows:       rows,
		UserTotals: calculator.FilteredUserTotals(rows, selectedUsers),
		GrandTotal: calculator.GrandTotal(rows),
	}, nil
}

// Roster returns the configured household members.
func (s *LedgerService) Roster() []string {
	return s.roster
}

func (s *LedgerService) publishCreated(ctx context.Context, expense *models.Expense, splits []models.Split) {
	users := make([]string, len(splits))
	for i, split := range splits {
		users[i] = split.User
	}
	event := events.NewExpenseEvent(events.TypeExpenseCreated, expense.ID, users, expense.TotalAmount.StringFixed(2))
	if err := s.publisher.ExpenseCreated(ctx, event); err != nil {
		// The expense is already committed; a lost event is only a warning.
		slog.Warn("Failed to publish expense.created event", "expense_id", expense.ID, "error", err)
	}
}

func (s *LedgerService) publishDeleted(ctx context.Context, id int64) {
	event := events.NewExpenseEvent(events.TypeExpenseDeleted, id, nil, "")
	if err := s.publisher.ExpenseDeleted(ctx, event); err != nil {
		slog.Warn("Failed to publish expense.deleted event", "expense_id", id, "error", err)
	}
}
