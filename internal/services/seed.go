package services

import (
	"context"
	"fmt"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

func ptr(v float64) *float64 { return &v }

// SampleProducts returns the starter catalog installed for a fresh user in
// session-only mode.
func SampleProducts() []domain.ProductInput {
	return []domain.ProductInput{
		{
			Name:           "Wheat bread",
			Unit:           domain.UnitGrams,
			CarbsPer100:    50,
			ProteinPer100:  ptr(8),
			FatPer100:      ptr(1),
			CaloriesPer100: ptr(250),
			Category:       domain.CategoryBakery,
		},
		{
			Name:           "Apple",
			Unit:           domain.UnitGrams,
			CarbsPer100:    14,
			ProteinPer100:  ptr(0.3),
			FatPer100:      ptr(0.2),
			CaloriesPer100: ptr(52),
			Category:       domain.CategoryFruit,
		},
		{
			Name:           "Milk 2%",
			Unit:           domain.UnitMilliliters,
			CarbsPer100:    4.8,
			ProteinPer100:  ptr(3.2),
			FatPer100:      ptr(2),
			CaloriesPer100: ptr(50),
			Category:       domain.CategoryDairy,
		},
		{
			Name:           "Plain yogurt",
			Unit:           domain.UnitGrams,
			CarbsPer100:    4.5,
			ProteinPer100:  ptr(3.5),
			FatPer100:      ptr(3),
			CaloriesPer100: ptr(60),
			Category:       domain.CategoryDairy,
		},
		{
			Name:           "Wheat pasta",
			Unit:           domain.UnitGrams,
			CarbsPer100:    75,
			ProteinPer100:  ptr(12),
			FatPer100:      ptr(1.5),
			CaloriesPer100: ptr(350),
			Category:       domain.CategoryBakery,
			Notes:          "Dry pasta weight",
		},
	}
}

// SeedDefaults installs the sample catalog for a user whose catalog is
// still empty. No-op otherwise.
func (s *CatalogService) SeedDefaults(ctx context.Context, userID int64) error {
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, input := range SampleProducts() {
		if _, err := s.AddProduct(ctx, userID, input); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	return nil
}
