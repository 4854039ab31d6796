package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

func sampleSnapshot() []models.LedgerRow {
	return []models.LedgerRow{
		{
			ExpenseID:   1,
			Name:        "Dinner",
			TotalAmount: decimal.RequireFromString("90.00"),
			Category:    "Food",
			Date:        "2024-01-15",
			User:        "Ayushi",
			SplitAmount: decimal.NewNullDecimal(decimal.RequireFromString("30.00")),
		},
	}
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss before first set", func(t *testing.T) {
		c := NewInMemoryCache(time.Minute)
		if _, ok := c.GetRows(ctx); ok {
			t.Error("expected miss on empty cache")
		}
	})

	t.Run("set then get returns the snapshot", func(t *testing.T) {
		c := NewInMemoryCache(time.Minute)
		c.SetRows(ctx, sampleSnapshot())

		rows, ok := c.GetRows(ctx)
		if !ok {
			t.Fatal("expected hit after set")
		}
		if len(rows) != 1 || rows[0].Name != "Dinner" {
			t.Errorf("unexpected snapshot: %+v", rows)
		}
	})

	t.Run("invalidate drops the snapshot", func(t *testing.T) {
		c := NewInMemoryCache(time.Minute)
		c.SetRows(ctx, sampleSnapshot())
		c.Invalidate(ctx)

		if _, ok := c.GetRows(ctx); ok {
			t.Error("expected miss after invalidate")
		}
	})

	t.Run("snapshot expires after TTL", func(t *testing.T) {
		c := NewInMemoryCache(10 * time.Millisecond)
		c.SetRows(ctx, sampleSnapshot())

		time.Sleep(20 * time.Millisecond)
		if _, ok := c.GetRows(ctx); ok {
			t.Error("expected miss after TTL expiry")
		}
	})

	t.Run("callers cannot mutate the cached snapshot", func(t *testing.T) {
		c := NewInMemoryCache(time.Minute)
		c.SetRows(ctx, sampleSnapshot())

		rows, _ := c.GetRows(ctx)
		rows[0].Name = "mutated"

		again, _ := c.GetRows(ctx)
		if again[0].Name != "Dinner" {
			t.Errorf("cached snapshot was mutated through a returned slice")
		}
	})
}
