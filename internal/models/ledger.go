package models

import "github.com/shopspring/decimal"

// LedgerRow is one reporting row of the ledger: an Expense joined with one
// of its Splits. An expense split N ways yields N ledger rows. Rows are
// ordered by expense ID ascending, then split insertion order.
type LedgerRow struct {
	ExpenseID   int64           `json:"expense_id"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	User        string          `json:"user"`

	// SplitAmount is the explicit share for this row. Invalid (null) only
	// for malformed legacy rows, in which case aggregation falls back to
	// dividing TotalAmount by the expense's row count.
	SplitAmount decimal.NullDecimal `json:"split_amount"`
}

// UserTotal is a participant's aggregate share across a set of expenses.
// Derived by grouping split amounts by user; never persisted.
type UserTotal struct {
	User  string          `json:"user"`
	Total decimal.Decimal `json:"total"`
}
