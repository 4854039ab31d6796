package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

func row(expenseID int64, name, total, user, split string) models.LedgerRow {
	r := models.LedgerRow{
		ExpenseID:   expenseID,
		Name:        name,
		TotalAmount: decimal.RequireFromString(total),
		Category:    "Food",
		Date:        "2024-01-15",
		User:        user,
	}
	if split != "" {
		r.SplitAmount = decimal.NewNullDecimal(decimal.RequireFromString(split))
	}
	return r
}

// A ledger with one three-way expense, one two-way expense and one
// single-user expense across the default roster.
func sampleRows() []models.LedgerRow {
	return []models.LedgerRow{
		row(1, "Dinner", "90.00", "Ayushi", "30.00"),
		row(1, "Dinner", "90.00", "Darshil", "30.00"),
		row(1, "Dinner", "90.00", "Jesal", "30.00"),
		row(2, "Cab", "21.00", "Ayushi", "10.50"),
		row(2, "Cab", "21.00", "Darshil", "10.50"),
		row(3, "Coffee", "4.50", "Jesal", "4.50"),
	}
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name string
		rows []models.LedgerRow
		want string
	}{
		{
			name: "multi-split expense counted once",
			rows: sampleRows(),
			want: "115.50",
		},
		{
			name: "single three-way expense",
			rows: []models.LedgerRow{
				row(1, "Dinner", "90.00", "Ayushi", "30.00"),
				row(1, "Dinner", "90.00", "Darshil", "30.00"),
				row(1, "Dinner", "90.00", "Jesal", "30.00"),
			},
			want: "90.00",
		},
		{
			name: "empty ledger",
			rows: nil,
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrandTotal(tt.rows)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("GrandTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUserTotals(t *testing.T) {
	totals := UserTotals(sampleRows())

	want := map[string]string{
		"Ayushi":  "40.50",
		"Darshil": "40.50",
		"Jesal":   "34.50",
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d totals, want %d", len(totals), len(want))
	}
	for _, ut := range totals {
		if !ut.Total.Equal(decimal.RequireFromString(want[ut.User])) {
			t.Errorf("%s total = %s, want %s", ut.User, ut.Total, want[ut.User])
		}
	}

	// Ordered by user name for stable output.
	for i := 1; i < len(totals); i++ {
		if totals[i-1].User > totals[i].User {
			t.Errorf("totals not sorted: %s before %s", totals[i-1].User, totals[i].User)
		}
	}
}

func TestFilteredUserTotals(t *testing.T) {
	tests := []struct {
		name     string
		rows     []models.LedgerRow
		selected []string
		want     map[string]string
	}{
		{
			name:     "filter excludes unselected users entirely",
			rows:     sampleRows(),
			selected: []string{"Ayushi", "Darshil"},
			want:     map[string]string{"Ayushi": "40.50", "Darshil": "40.50"},
		},
		{
			name:     "all sentinel keeps everyone",
			rows:     sampleRows(),
			selected: []string{"all"},
			want:     map[string]string{"Ayushi": "40.50", "Darshil": "40.50", "Jesal": "34.50"},
		},
		{
			name:     "nil selection keeps everyone",
			rows:     sampleRows(),
			selected: nil,
			want:     map[string]string{"Ayushi": "40.50", "Darshil": "40.50", "Jesal": "34.50"},
		},
		{
			name: "missing split amount falls back to equal division",
			rows: []models.LedgerRow{
				row(7, "Legacy", "30.00", "Ayushi", ""),
				row(7, "Legacy", "30.00", "Darshil", ""),
				row(7, "Legacy", "30.00", "Jesal", ""),
			},
			selected: []string{"Ayushi"},
			want:     map[string]string{"Ayushi": "10.00"},
		},
		{
			name:     "selection matching no rows yields empty result",
			rows:     sampleRows(),
			selected: []string{"Nobody"},
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := FilteredUserTotals(tt.rows, tt.selected)
			if len(totals) != len(tt.want) {
				t.Fatalf("got %d totals (%v), want %d", len(totals), totals, len(tt.want))
			}
			for _, ut := range totals {
				wantTotal, ok := tt.want[ut.User]
				if !ok {
					t.Errorf("unexpected user %s in totals", ut.User)
					continue
				}
				if !ut.Total.Equal(decimal.RequireFromString(wantTotal)) {
					t.Errorf("%s total = %s, want %s", ut.User, ut.Total, wantTotal)
				}
			}
		})
	}
}
