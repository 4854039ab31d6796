package sqlite

import (
	"context"
	"fmt"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
	"github.com/AyushiKadu/Expense-Tracker/internal/storage"
)

// CreateExpense persists an expense and its splits in one transaction.
// The generated expense and split IDs are written back to the arguments.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []models.Split) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (name, total_amount, category, date) VALUES (?, ?, ?, ?)",
		expense.Name, expense.TotalAmount, expense.Category, expense.Date,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	expenseID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read generated expense id: %w", err)
	}
	expense.ID = expenseID

	for i := range splits {
		split := &splits[i]
		split.ExpenseID = expenseID

		res, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user, split_amount) VALUES (?, ?, ?)",
			split.ExpenseID, split.User, split.SplitAmount,
		)
		if err != nil {
			return fmt.Errorf("insert split for %s: %w", split.User, err)
		}
		if split.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read generated split id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense and its splits in one transaction,
// splits first to satisfy the foreign key. Returns storage.ErrNotFound
// when the expense does not exist; under concurrent deletes of the same
// ID at most one call observes an affected row and reports success.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", id); err != nil {
		return fmt.Errorf("delete splits: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ListLedgerRows returns one row per split joined with its expense,
// ordered by expense ID then split insertion order. Expenses without
// splits produce no rows.
func (s *SQLiteStore) ListLedgerRows(ctx context.Context) ([]models.LedgerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.expense_id, e.name, e.total_amount, e.category, e.date, s.user, s.split_amount
		FROM expenses e
		JOIN expense_splits s ON e.expense_id = s.expense_id
		ORDER BY e.expense_id ASC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ledger rows: %w", err)
	}
	defer rows.Close()

	ledger := make([]models.LedgerRow, 0)
	for rows.Next() {
		var row models.LedgerRow
		if err := rows.Scan(
			&row.ExpenseID,
			&row.Name,
			&row.TotalAmount,
			&row.Category,
			&row.Date,
			&row.User,
			&row.SplitAmount,
		); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		ledger = append(ledger, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}

	return ledger, nil
}
