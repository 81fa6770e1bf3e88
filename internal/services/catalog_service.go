package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
)

// CatalogService owns the food product catalog.
type CatalogService struct {
	repo     domain.ProductRepository
	collator *collate.Collator
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo domain.ProductRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		collator: collate.New(language.Und),
	}
}

// AddProduct validates the input, assigns a fresh identifier and creation
// timestamp and stores the record.
func (s *CatalogService) AddProduct(ctx context.Context, userID int64, input domain.ProductInput) (*domain.Product, error) {
	normalized, err := validateProductInput(input)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           normalized.Name,
		Barcode:        normalized.Barcode,
		Unit:           normalized.Unit,
		CarbsPer100:    normalized.CarbsPer100,
		ProteinPer100:  normalized.ProteinPer100,
		FatPer100:      normalized.FatPer100,
		CaloriesPer100: normalized.CaloriesPer100,
		Category:       normalized.Category,
		Notes:          normalized.Notes,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	return product, nil
}

// AddFromNutritionRecord stores a product resolved by the external barcode
// lookup. Such products land in the uncategorized bucket.
func (s *CatalogService) AddFromNutritionRecord(ctx context.Context, userID int64, rec domain.NutritionRecord) (*domain.Product, error) {
	return s.AddProduct(ctx, userID, domain.ProductInput{
		Name:           rec.Name,
		Barcode:        rec.Barcode,
		Unit:           rec.Unit,
		CarbsPer100:    rec.CarbsPer100,
		ProteinPer100:  rec.ProteinPer100,
		FatPer100:      rec.FatPer100,
		CaloriesPer100: rec.CaloriesPer100,
		Category:       domain.CategoryOther,
	})
}

// UpdateProduct replaces all fields of an existing product except its
// identifier and original creation timestamp.
func (s *CatalogService) UpdateProduct(ctx context.Context, userID int64, id string, input domain.ProductInput) (*domain.Product, error) {
	normalized, err := validateProductInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:             existing.ID,
		UserID:         existing.UserID,
		Name:           normalized.Name,
		Barcode:        normalized.Barcode,
		Unit:           normalized.Unit,
		CarbsPer100:    normalized.CarbsPer100,
		ProteinPer100:  normalized.ProteinPer100,
		FatPer100:      normalized.FatPer100,
		CaloriesPer100: normalized.CaloriesPer100,
		Category:       normalized.Category,
		Notes:          normalized.Notes,
		CreatedAt:      existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// RemoveProduct deletes the product. Meal entries referencing it are left
// alone; they resolve to a zero contribution afterwards.
func (s *CatalogService) RemoveProduct(ctx context.Context, userID int64, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return apperrors.NewNotFoundError("product not found")
		}
		return fmt.Errorf("failed to remove product: %w", err)
	}
	return nil
}

// Find returns a single product by id.
func (s *CatalogService) Find(ctx context.Context, userID int64, id string) (*domain.Product, error) {
	product, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// List returns the user's catalog, filtered and sorted.
func (s *CatalogService) List(ctx context.Context, userID int64, filter domain.ProductFilter, sortBy domain.ProductSort) ([]domain.Product, error) {
	products, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	nameTerm := strings.ToLower(strings.TrimSpace(filter.Name))
	filtered := products[:0:0]
	for _, p := range products {
		if nameTerm != "" && !strings.Contains(strings.ToLower(p.Name), nameTerm) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	s.sortProducts(filtered, sortBy)
	return filtered, nil
}

func (s *CatalogService) sortProducts(products []domain.Product, sortBy domain.ProductSort) {
	switch sortBy {
	case domain.SortCreatedAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		})
	case domain.SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return s.collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return s.collator.CompareString(products[i].Name, products[j].Name) > 0
		})
	default: // SortCreatedDesc
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

func validateProductInput(input domain.ProductInput) (domain.ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, apperrors.NewValidationError("product name must not be empty")
	}
	if math.IsNaN(input.CarbsPer100) || math.IsInf(input.CarbsPer100, 0) || input.CarbsPer100 < 0 {
		return input, apperrors.NewValidationError("carbohydrate content must be a non-negative number")
	}
	for _, nutrient := range []struct {
		name  string
		value *float64
	}{
		{"protein", input.ProteinPer100},
		{"fat", input.FatPer100},
		{"calories", input.CaloriesPer100},
	} {
		if nutrient.value == nil {
			continue
		}
		if math.IsNaN(*nutrient.value) || math.IsInf(*nutrient.value, 0) || *nutrient.value < 0 {
			return input, apperrors.NewValidationError(nutrient.name + " content must be a non-negative number")
		}
	}

	if input.Unit == "" {
		input.Unit = domain.UnitGrams
	}
	if input.Unit != domain.UnitGrams && input.Unit != domain.UnitMilliliters {
		return input, apperrors.NewValidationError("unknown measurement unit")
	}
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}
	if !domain.ValidCategory(input.Category) {
		return input, apperrors.NewValidationError("unknown product category")
	}
	return input, nil
}
