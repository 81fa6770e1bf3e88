package services

import (
	"context"
	"fmt"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// HistoryLimit caps the dose history ledger per user. When a new result
// arrives at capacity, the oldest entry is evicted.
const HistoryLimit = 10

// HistoryService owns the bounded, most-recent-first dose history ledger.
// Entries are append-and-evict only; there is no update or delete.
type HistoryService struct {
	repo domain.HistoryRepository
}

// NewHistoryService creates a new history service.
func NewHistoryService(repo domain.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record appends a calculation result and evicts anything beyond the limit.
func (s *HistoryService) Record(ctx context.Context, calc *domain.BolusCalculation) error {
	if err := s.repo.Insert(ctx, calc); err != nil {
		return fmt.Errorf("failed to record calculation: %w", err)
	}
	if err := s.repo.TrimToRecent(ctx, calc.UserID, HistoryLimit); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

// List returns the ledger's contents, most recent first.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]domain.BolusCalculation, error) {
	calcs, err := s.repo.ListRecent(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return calcs, nil
}
