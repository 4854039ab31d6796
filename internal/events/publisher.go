// Package events publishes ledger change notifications to interested
// consumers (sync workers, notification bots). Publishing is best effort:
// a lost event never fails or rolls back the ledger write that caused it.
package events

import "context"

// Publisher emits ledger change events.
type Publisher interface {
	// ExpenseCreated announces a newly recorded expense.
	ExpenseCreated(ctx context.Context, event ExpenseEvent) error

	// ExpenseDeleted announces the removal of an expense.
	ExpenseDeleted(ctx context.Context, event ExpenseEvent) error

	// Close releases any broker resources.
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) ExpenseCreated(context.Context, ExpenseEvent) error { return nil }
func (NopPublisher) ExpenseDeleted(context.Context, ExpenseEvent) error { return nil }
func (NopPublisher) Close() error                                       { return nil }
