package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/repository/memory"
)

func newCatalog() *CatalogService {
	return NewCatalogService(memory.NewProductRepository())
}

func TestCatalogService_AddProduct(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	t.Run("assigns id and defaults", func(t *testing.T) {
		catalog := newCatalog()
		product, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "  Apple  ", CarbsPer100: 14})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.ID == "" {
			t.Error("expected a generated id")
		}
		if product.Name != "Apple" {
			t.Errorf("name = %q, want trimmed %q", product.Name, "Apple")
		}
		if product.Unit != domain.UnitGrams {
			t.Errorf("unit = %q, want default grams", product.Unit)
		}
		if product.Category != domain.CategoryOther {
			t.Errorf("category = %q, want default other", product.Category)
		}
		if product.CreatedAt.IsZero() {
			t.Error("expected a creation timestamp")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		catalog := newCatalog()
		cases := []struct {
			name  string
			input domain.ProductInput
		}{
			{"empty name", domain.ProductInput{Name: "   ", CarbsPer100: 10}},
			{"negative carbs", domain.ProductInput{Name: "X", CarbsPer100: -1}},
			{"NaN carbs", domain.ProductInput{Name: "X", CarbsPer100: math.NaN()}},
			{"unknown unit", domain.ProductInput{Name: "X", CarbsPer100: 10, Unit: "oz"}},
			{"unknown category", domain.ProductInput{Name: "X", CarbsPer100: 10, Category: "stuff"}},
			{"negative protein", domain.ProductInput{Name: "X", CarbsPer100: 10, ProteinPer100: ptr(-1)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := catalog.AddProduct(ctx, userID, tc.input); !apperrors.IsValidation(err) {
					t.Errorf("got %v, want validation error", err)
				}
			})
		}
	})

	t.Run("allows duplicate names and barcodes", func(t *testing.T) {
		catalog := newCatalog()
		input := domain.ProductInput{Name: "Juice", Barcode: "4607001234567", CarbsPer100: 11}
		first, err := catalog.AddProduct(ctx, userID, input)
		if err != nil {
			t.Fatalf("first add: %v", err)
		}
		second, err := catalog.AddProduct(ctx, userID, input)
		if err != nil {
			t.Fatalf("second add: %v", err)
		}
		if first.ID == second.ID {
			t.Error("duplicate adds must get distinct ids")
		}
	})
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	t.Run("preserves id and creation timestamp", func(t *testing.T) {
		catalog := newCatalog()
		created, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Rice", CarbsPer100: 78})
		if err != nil {
			t.Fatalf("add: %v", err)
		}

		time.Sleep(time.Millisecond)
		updated, err := catalog.UpdateProduct(ctx, userID, created.ID, domain.ProductInput{
			Name:        "Brown rice",
			CarbsPer100: 72,
			Category:    domain.CategoryOther,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID {
			t.Errorf("id changed from %q to %q", created.ID, updated.ID)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("creation timestamp changed from %v to %v", created.CreatedAt, updated.CreatedAt)
		}
		if updated.Name != "Brown rice" || updated.CarbsPer100 != 72 {
			t.Errorf("fields not replaced: %+v", updated)
		}
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		catalog := newCatalog()
		if _, err := catalog.UpdateProduct(ctx, userID, "nope", domain.ProductInput{Name: "X", CarbsPer100: 1}); !apperrors.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})

	t.Run("invalid input leaves stored product intact", func(t *testing.T) {
		catalog := newCatalog()
		created, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Rice", CarbsPer100: 78})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := catalog.UpdateProduct(ctx, userID, created.ID, domain.ProductInput{Name: "", CarbsPer100: 1}); !apperrors.IsValidation(err) {
			t.Fatalf("got %v, want validation error", err)
		}
		current, err := catalog.Find(ctx, userID, created.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if current.Name != "Rice" || current.CarbsPer100 != 78 {
			t.Errorf("product changed despite rejected update: %+v", current)
		}
	})
}

func TestCatalogService_RemoveProduct(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	catalog := newCatalog()
	created, err := catalog.AddProduct(ctx, userID, domain.ProductInput{Name: "Banana", CarbsPer100: 23})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := catalog.RemoveProduct(ctx, userID, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := catalog.Find(ctx, userID, created.ID); !apperrors.IsNotFound(err) {
		t.Errorf("find after remove: got %v, want not found", err)
	}
	if err := catalog.RemoveProduct(ctx, userID, created.ID); !apperrors.IsNotFound(err) {
		t.Errorf("second remove: got %v, want not found", err)
	}
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	catalog := newCatalog()
	names := []string{"Cherry pie", "apple juice", "Bread"}
	categories := []domain.Category{domain.CategoryBakery, domain.CategoryDrinks, domain.CategoryBakery}
	for i, name := range names {
		if _, err := catalog.AddProduct(ctx, userID, domain.ProductInput{
			Name: name, CarbsPer100: float64(10 + i), Category: categories[i],
		}); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
		time.Sleep(time.Millisecond)
	}

	t.Run("filters by name substring case-insensitively", func(t *testing.T) {
		products, err := catalog.List(ctx, userID, domain.ProductFilter{Name: "APPLE"}, domain.SortNameAsc)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(products) != 1 || products[0].Name != "apple juice" {
			t.Errorf("got %+v, want just apple juice", products)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		products, err := catalog.List(ctx, userID, domain.ProductFilter{Category: domain.CategoryBakery}, domain.SortNameAsc)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(products) != 2 {
			t.Errorf("got %d products, want 2", len(products))
		}
	})

	t.Run("sorts by name regardless of case", func(t *testing.T) {
		products, err := catalog.List(ctx, userID, domain.ProductFilter{}, domain.SortNameAsc)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []string{"apple juice", "Bread", "Cherry pie"}
		for i, name := range want {
			if products[i].Name != name {
				t.Fatalf("position %d = %q, want %q", i, products[i].Name, name)
			}
		}
	})

	t.Run("defaults to newest first", func(t *testing.T) {
		products, err := catalog.List(ctx, userID, domain.ProductFilter{}, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if products[0].Name != "Bread" {
			t.Errorf("newest = %q, want Bread", products[0].Name)
		}
	})

	t.Run("users see only their own products", func(t *testing.T) {
		products, err := catalog.List(ctx, 999, domain.ProductFilter{}, domain.SortNameAsc)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(products) != 0 {
			t.Errorf("got %d products for another user, want 0", len(products))
		}
	})
}

func TestCatalogService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	const userID = int64(1)

	catalog := newCatalog()
	if err := catalog.SeedDefaults(ctx, userID); err != nil {
		t.Fatalf("seed: %v", err)
	}
	products, err := catalog.List(ctx, userID, domain.ProductFilter{}, domain.SortNameAsc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != len(SampleProducts()) {
		t.Fatalf("got %d products, want %d", len(products), len(SampleProducts()))
	}

	// Seeding again must not duplicate.
	if err := catalog.SeedDefaults(ctx, userID); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	products, err = catalog.List(ctx, userID, domain.ProductFilter{}, domain.SortNameAsc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != len(SampleProducts()) {
		t.Errorf("got %d products after reseed, want %d", len(products), len(SampleProducts()))
	}
}
