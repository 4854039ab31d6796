// Package calculator implements the pure ledger math: splitting an expense
// amount across participants and aggregating ledger snapshots into totals.
package calculator

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount to split is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrInvalidUserSpec is returned when a user specification resolves to
	// zero users after trimming and splitting.
	ErrInvalidUserSpec = errors.New("user specification resolves to no users")
)

// AllUsersSentinel is the user specification meaning "every roster member".
// Matched case-insensitively.
const AllUsersSentinel = "All"

// Share is one user's computed portion of a split amount.
type Share struct {
	User   string
	Amount decimal.Decimal
}

// ResolveUsers turns a user specification into the ordered list of
// participants an expense is shared by. The specification is one of:
//
//   - the "All" sentinel (case-insensitive): the configured roster
//   - a comma-separated list of names: each entry trimmed, empties dropped
//   - a single name
//
// Returns ErrInvalidUserSpec when nothing remains after trimming.
func ResolveUsers(spec string, roster []string) ([]string, error) {
	spec = strings.TrimSpace(spec)

	if strings.EqualFold(spec, AllUsersSentinel) {
		if len(roster) == 0 {
			return nil, ErrInvalidUserSpec
		}
		users := make([]string, len(roster))
		copy(users, roster)
		return users, nil
	}

	var users []string
	for _, name := range strings.Split(spec, ",") {
		if name = strings.TrimSpace(name); name != "" {
			users = append(users, name)
		}
	}
	if len(users) == 0 {
		return nil, ErrInvalidUserSpec
	}
	return users, nil
}

// SplitAmount divides amount equally across users. Each share is the amount
// divided by the user count, rounded DOWN to two decimal places; the first
// user additionally absorbs the remainder so the shares always sum exactly
// to amount: 100.00 across three users yields 33.34, 33.33, 33.33. Flooring
// keeps the remainder non-negative, so no share can ever go below zero.
//
// Returns ErrInvalidAmount for non-positive amounts and ErrInvalidUserSpec
// for an empty user list.
func SplitAmount(amount decimal.Decimal, users []string) ([]Share, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if len(users) == 0 {
		return nil, ErrInvalidUserSpec
	}

	n := int64(len(users))
	base := amount.Div(decimal.NewFromInt(n)).RoundDown(2)
	first := amount.Sub(base.Mul(decimal.NewFromInt(n - 1)))

	shares := make([]Share, len(users))
	for i, user := range users {
		share := base
		if i == 0 {
			share = first
		}
		shares[i] = Share{User: user, Amount: share}
	}
	return shares, nil
}

// Split resolves a user specification against the roster and divides amount
// across the resolved users in one step.
func Split(amount decimal.Decimal, userSpec string, roster []string) ([]Share, error) {
	users, err := ResolveUsers(userSpec, roster)
	if err != nil {
		return nil, err
	}
	return SplitAmount(amount, users)
}
