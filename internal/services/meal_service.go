package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
)

// DefaultQuantity is the starting quantity for a freshly added meal line,
// in the product's declared unit.
const DefaultQuantity = 100.0

// ProductResolver resolves meal line references against the catalog.
type ProductResolver interface {
	Find(ctx context.Context, userID int64, id string) (*domain.Product, error)
}

// ResolvedMealEntry is a meal line joined with its product, if it still
// exists. Product is nil for dangling references.
type ResolvedMealEntry struct {
	Entry   domain.MealEntry
	Product *domain.Product
	Carbs   float64
}

// MealService owns the per-user meal composition. The composition is pure
// session state: it is never persisted and vanishes with the process.
type MealService struct {
	catalog ProductResolver

	mu    sync.RWMutex
	meals map[int64][]domain.MealEntry
}

// NewMealService creates a new meal composition service.
func NewMealService(catalog ProductResolver) *MealService {
	return &MealService{
		catalog: catalog,
		meals:   make(map[int64][]domain.MealEntry),
	}
}

// AddEntry appends a new meal line. Adding the same product twice yields two
// independent lines. Invalid quantities are clamped to zero.
func (s *MealService) AddEntry(userID int64, productID string, quantity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals[userID] = append(s.meals[userID], domain.MealEntry{
		ProductID: productID,
		Quantity:  clampQuantity(quantity),
	})
}

// Entries returns a copy of the user's current meal lines.
func (s *MealService) Entries(userID int64) []domain.MealEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.MealEntry, len(s.meals[userID]))
	copy(entries, s.meals[userID])
	return entries
}

// AdjustQuantity changes a line's quantity by delta, clamping at zero.
func (s *MealService) AdjustQuantity(userID int64, index int, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.meals[userID]
	if index < 0 || index >= len(entries) {
		return apperrors.NewNotFoundError(fmt.Sprintf("no meal entry at index %d", index))
	}
	if math.IsNaN(delta) {
		delta = 0
	}
	entries[index].Quantity = clampQuantity(entries[index].Quantity + delta)
	return nil
}

// SetQuantity sets a line's quantity to an absolute value, clamping at zero.
// Non-numeric input counts as zero.
func (s *MealService) SetQuantity(userID int64, index int, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.meals[userID]
	if index < 0 || index >= len(entries) {
		return apperrors.NewNotFoundError(fmt.Sprintf("no meal entry at index %d", index))
	}
	entries[index].Quantity = clampQuantity(value)
	return nil
}

// RemoveEntry deletes a line; subsequent indices shift down.
func (s *MealService) RemoveEntry(userID int64, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.meals[userID]
	if index < 0 || index >= len(entries) {
		return apperrors.NewNotFoundError(fmt.Sprintf("no meal entry at index %d", index))
	}
	s.meals[userID] = append(entries[:index], entries[index+1:]...)
	return nil
}

// Clear empties the composition, for a fresh calculation session.
func (s *MealService) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.meals, userID)
}

// TotalCarbs sums the carbohydrate contribution of every line whose product
// still resolves in the catalog. Lines referencing a deleted product
// contribute zero.
func (s *MealService) TotalCarbs(ctx context.Context, userID int64) (float64, error) {
	resolved, err := s.ResolvedEntries(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, line := range resolved {
		total += line.Carbs
	}
	return total, nil
}

// ResolvedEntries joins each meal line with its catalog product for display.
func (s *MealService) ResolvedEntries(ctx context.Context, userID int64) ([]ResolvedMealEntry, error) {
	entries := s.Entries(userID)
	resolved := make([]ResolvedMealEntry, 0, len(entries))
	for _, entry := range entries {
		line := ResolvedMealEntry{Entry: entry}
		product, err := s.catalog.Find(ctx, userID, entry.ProductID)
		switch {
		case err == nil:
			line.Product = product
			line.Carbs = domain.CarbContribution(product, entry.Quantity)
		case apperrors.IsNotFound(err):
			// dangling reference, contributes zero
		default:
			return nil, fmt.Errorf("failed to resolve meal entry: %w", err)
		}
		resolved = append(resolved, line)
	}
	return resolved, nil
}

func clampQuantity(quantity float64) float64 {
	if math.IsNaN(quantity) || quantity < 0 {
		return 0
	}
	return quantity
}
