package calculator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

// GrandTotal sums each distinct expense's total amount exactly once,
// regardless of how many split rows represent it. Summing naively over
// ledger rows would count a three-way split three times.
func GrandTotal(rows []models.LedgerRow) decimal.Decimal {
	seen := make(map[int64]bool, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		if seen[row.ExpenseID] {
			continue
		}
		seen[row.ExpenseID] = true
		total = total.Add(row.TotalAmount)
	}
	return total
}

// UserTotals groups split amounts by user across the whole snapshot.
// Results are ordered by user name for stable output.
func UserTotals(rows []models.LedgerRow) []models.UserTotal {
	return FilteredUserTotals(rows, nil)
}

// FilteredUserTotals computes per-user totals restricted to the selected
// users. A nil/empty selection, or one containing the "All" sentinel, keeps
// every row. Rows carrying an explicit split amount contribute it directly;
// rows without one (malformed legacy data) fall back to the expense total
// divided by that expense's row count.
func FilteredUserTotals(rows []models.LedgerRow, selected []string) []models.UserTotal {
	keep := selectionSet(selected)

	// Row count per expense, needed for the fallback share of rows that
	// predate explicit split amounts.
	rowCount := make(map[int64]int64, len(rows))
	for _, row := range rows {
		rowCount[row.ExpenseID]++
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if keep != nil && !keep[row.User] {
			continue
		}
		share := row.SplitAmount.Decimal
		if !row.SplitAmount.Valid {
			share = row.TotalAmount.Div(decimal.NewFromInt(rowCount[row.ExpenseID])).Round(2)
		}
		totals[row.User] = totals[row.User].Add(share)
	}

	result := make([]models.UserTotal, 0, len(totals))
	for user, total := range totals {
		result = append(result, models.UserTotal{User: user, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].User < result[j].User })
	return result
}

// selectionSet returns nil when the selection means "everyone".
func selectionSet(selected []string) map[string]bool {
	if len(selected) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(selected))
	for _, user := range selected {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		if strings.EqualFold(user, AllUsersSentinel) {
			return nil
		}
		keep[user] = true
	}
	if len(keep) == 0 {
		return nil
	}
	return keep
}
