package services

import (
	"context"
	"math"
	"testing"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/repository/memory"
)

func newMealFixture(t *testing.T) (*MealService, *CatalogService) {
	t.Helper()
	catalog := NewCatalogService(memory.NewProductRepository())
	return NewMealService(catalog), catalog
}

func TestMealService_Entries(t *testing.T) {
	const userID = int64(1)
	meal, _ := newMealFixture(t)

	t.Run("same product twice makes independent lines", func(t *testing.T) {
		meal.AddEntry(userID, "p1", 100)
		meal.AddEntry(userID, "p1", 50)
		entries := meal.Entries(userID)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].Quantity != 100 || entries[1].Quantity != 50 {
			t.Errorf("quantities = %v/%v, want 100/50", entries[0].Quantity, entries[1].Quantity)
		}
	})

	t.Run("invalid quantity clamps to zero on add", func(t *testing.T) {
		meal.Clear(userID)
		meal.AddEntry(userID, "p1", -20)
		meal.AddEntry(userID, "p2", math.NaN())
		for i, entry := range meal.Entries(userID) {
			if entry.Quantity != 0 {
				t.Errorf("entry %d quantity = %v, want 0", i, entry.Quantity)
			}
		}
	})
}

func TestMealService_AdjustQuantity(t *testing.T) {
	const userID = int64(1)
	meal, _ := newMealFixture(t)
	meal.AddEntry(userID, "p1", 30)

	t.Run("decrement clamps at zero", func(t *testing.T) {
		if err := meal.AdjustQuantity(userID, 0, -50); err != nil {
			t.Fatalf("adjust: %v", err)
		}
		if got := meal.Entries(userID)[0].Quantity; got != 0 {
			t.Errorf("quantity = %v, want 0", got)
		}
	})

	t.Run("increment from zero", func(t *testing.T) {
		if err := meal.AdjustQuantity(userID, 0, 10); err != nil {
			t.Fatalf("adjust: %v", err)
		}
		if got := meal.Entries(userID)[0].Quantity; got != 10 {
			t.Errorf("quantity = %v, want 10", got)
		}
	})

	t.Run("NaN delta counts as zero", func(t *testing.T) {
		if err := meal.AdjustQuantity(userID, 0, math.NaN()); err != nil {
			t.Fatalf("adjust: %v", err)
		}
		if got := meal.Entries(userID)[0].Quantity; got != 10 {
			t.Errorf("quantity = %v, want 10 unchanged", got)
		}
	})

	t.Run("out-of-range index is not found", func(t *testing.T) {
		if err := meal.AdjustQuantity(userID, 5, 10); !apperrors.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
		if err := meal.AdjustQuantity(userID, -1, 10); !apperrors.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

func TestMealService_SetQuantity(t *testing.T) {
	const userID = int64(1)
	meal, _ := newMealFixture(t)
	meal.AddEntry(userID, "p1", 100)

	if err := meal.SetQuantity(userID, 0, 37.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := meal.Entries(userID)[0].Quantity; got != 37.5 {
		t.Errorf("quantity = %v, want 37.5", got)
	}

	if err := meal.SetQuantity(userID, 0, math.NaN()); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := meal.Entries(userID)[0].Quantity; got != 0 {
		t.Errorf("quantity = %v, want 0 for non-numeric input", got)
	}

	if err := meal.SetQuantity(userID, 3, 10); !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestMealService_RemoveAndClear(t *testing.T) {
	const userID = int64(1)
	meal, _ := newMealFixture(t)
	meal.AddEntry(userID, "a", 1)
	meal.AddEntry(userID, "b", 2)
	meal.AddEntry(userID, "c", 3)

	if err := meal.RemoveEntry(userID, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	entries := meal.Entries(userID)
	if len(entries) != 2 || entries[0].ProductID != "a" || entries[1].ProductID != "c" {
		t.Errorf("entries after remove = %+v, want a then c", entries)
	}

	if err := meal.RemoveEntry(userID, 2); !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not found for stale index", err)
	}

	meal.Clear(userID)
	if got := meal.Entries(userID); len(got) != 0 {
		t.Errorf("entries after clear = %+v, want empty", got)
	}
}

func TestMealService_TotalCarbs(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	t.Run("sums contributions per 100 units", func(t *testing.T) {
		meal, catalog := newMealFixture(t)
		bread, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Bread", CarbsPer100: 50})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		milk, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Milk", Unit: domain.UnitMilliliters, CarbsPer100: 4.8})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		meal.AddEntry(userID, bread.ID, 60)  // 30 g
		meal.AddEntry(userID, milk.ID, 250)  // 12 g

		total, err := meal.TotalCarbs(ctx, userID)
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if !approxEqual(total, 42) {
			t.Errorf("total = %v, want 42", total)
		}
	})

	t.Run("deleted product contributes zero", func(t *testing.T) {
		meal, catalog := newMealFixture(t)
		bread, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Bread", CarbsPer100: 50})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		apple, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Apple", CarbsPer100: 14})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		meal.AddEntry(userID, bread.ID, 100)
		meal.AddEntry(userID, apple.ID, 100)

		if err := catalog.RemoveProduct(ctx, userID, bread.ID); err != nil {
			t.Fatalf("remove: %v", err)
		}

		total, err := meal.TotalCarbs(ctx, userID)
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if !approxEqual(total, 14) {
			t.Errorf("total = %v, want 14 with dangling line at zero", total)
		}

		resolved, err := meal.ResolvedEntries(ctx, userID)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if len(resolved) != 2 {
			t.Fatalf("got %d resolved lines, want 2 (dangling line kept)", len(resolved))
		}
		if resolved[0].Product != nil || resolved[0].Carbs != 0 {
			t.Errorf("dangling line = %+v, want nil product and zero carbs", resolved[0])
		}
	})

	t.Run("empty meal totals zero", func(t *testing.T) {
		meal, _ := newMealFixture(t)
		total, err := meal.TotalCarbs(ctx, userID)
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if total != 0 {
			t.Errorf("total = %v, want 0", total)
		}
	})
}
