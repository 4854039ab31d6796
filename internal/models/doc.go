// Package models defines the core domain models for the expense ledger.
//
// # Persisted Models
//
//   - Expense: a shared purchase with a total amount, category and date
//   - Split: one participant's share of an Expense's total
//   - User: a registered account used for authenticated access
//
// An Expense and its Splits are created and deleted together, atomically.
// A Split belongs to exactly one Expense; deleting the Expense cascades to
// its Splits, so readers never observe orphaned shares.
//
// # Derived Models
//
//   - LedgerRow: one Expense/Split join row, the unit the ledger is reported in
//   - UserTotal: a participant's aggregate share across a set of expenses
//
// Derived models are never persisted; they are computed from a ledger
// snapshot by the calculator package.
//
// # Design Principles
//
//  1. Participants on splits are plain name strings. Accounts (User) exist
//     only for API authentication and are not linked to splits, matching the
//     roster-based sharing model.
//  2. Monetary values are decimal.Decimal throughout. Floats never carry
//     money; request amounts arrive as strings and are parsed at the boundary.
//  3. Relationships use int64 IDs instead of pointers to avoid circular
//     references between Expense and Split.
package models
