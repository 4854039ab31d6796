package models

import "github.com/shopspring/decimal"

// Expense represents a single recorded purchase shared by a set of users.
type Expense struct {
	// ID is the store-assigned identifier (auto-increment, never reused).
	ID int64 `json:"expense_id"`

	// Name is the human-readable description of the purchase.
	Name string `json:"name"`

	// TotalAmount is the full amount paid. Always > 0.
	TotalAmount decimal.Decimal `json:"total_amount"`

	// Category is the expense category name (e.g. "Food", "Travel").
	Category string `json:"category"`

	// Date is the calendar date of the expense in YYYY-MM-DD form.
	Date string `json:"date"`
}

// Split is one user's assigned share of an Expense's total amount.
// The shares of an expense always sum exactly to its TotalAmount; the
// first resolved user absorbs the rounding remainder.
type Split struct {
	// ID is the store-assigned identifier of the split row.
	ID int64 `json:"id"`

	// ExpenseID references the owning Expense.
	ExpenseID int64 `json:"expense_id"`

	// User is the participant name this share belongs to.
	User string `json:"user"`

	// SplitAmount is this user's share of the expense total.
	SplitAmount decimal.Decimal `json:"split_amount"`
}
