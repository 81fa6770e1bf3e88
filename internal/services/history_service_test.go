package services

import (
	"context"
	"testing"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/repository/memory"
)

func TestHistoryService(t *testing.T) {
	ctx := context.Background()
	const userID = int64(42)

	t.Run("keeps only the most recent entries", func(t *testing.T) {
		history := NewHistoryService(memory.NewHistoryRepository())
		for i := 1; i <= HistoryLimit+1; i++ {
			calc := &domain.BolusCalculation{UserID: userID, Glucose: float64(100 + i), TotalDose: float64(i)}
			if err := history.Record(ctx, calc); err != nil {
				t.Fatalf("record %d: %v", i, err)
			}
		}

		calcs, err := history.List(ctx, userID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(calcs) != HistoryLimit {
			t.Fatalf("got %d entries, want %d", len(calcs), HistoryLimit)
		}
		// Most recent first: entry 11 down to entry 2, the first was evicted.
		if calcs[0].TotalDose != float64(HistoryLimit+1) {
			t.Errorf("newest total = %v, want %v", calcs[0].TotalDose, float64(HistoryLimit+1))
		}
		if calcs[len(calcs)-1].TotalDose != 2 {
			t.Errorf("oldest kept total = %v, want 2", calcs[len(calcs)-1].TotalDose)
		}
		for i := 1; i < len(calcs); i++ {
			if calcs[i-1].TotalDose <= calcs[i].TotalDose {
				t.Fatalf("entries not most-recent-first at %d: %v then %v", i, calcs[i-1].TotalDose, calcs[i].TotalDose)
			}
		}
	})

	t.Run("ledgers are isolated per user", func(t *testing.T) {
		history := NewHistoryService(memory.NewHistoryRepository())
		if err := history.Record(ctx, &domain.BolusCalculation{UserID: 1, TotalDose: 1}); err != nil {
			t.Fatalf("record: %v", err)
		}
		if err := history.Record(ctx, &domain.BolusCalculation{UserID: 2, TotalDose: 2}); err != nil {
			t.Fatalf("record: %v", err)
		}

		calcs, err := history.List(ctx, 1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(calcs) != 1 || calcs[0].TotalDose != 1 {
			t.Errorf("user 1 ledger = %+v, want a single entry with total 1", calcs)
		}
	})

	t.Run("empty ledger lists empty", func(t *testing.T) {
		history := NewHistoryService(memory.NewHistoryRepository())
		calcs, err := history.List(ctx, userID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(calcs) != 0 {
			t.Errorf("got %d entries, want 0", len(calcs))
		}
	})
}
