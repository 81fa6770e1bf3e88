package memory

import (
	"context"
	"sync"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// HistoryRepository keeps dose history in memory, most recent first.
type HistoryRepository struct {
	mu     sync.RWMutex
	nextID uint
	calcs  map[int64][]domain.BolusCalculation
}

// NewHistoryRepository creates an empty in-memory history store.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		calcs: make(map[int64][]domain.BolusCalculation),
	}
}

func (r *HistoryRepository) Insert(_ context.Context, calc *domain.BolusCalculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	calc.ID = r.nextID
	r.calcs[calc.UserID] = append([]domain.BolusCalculation{*calc}, r.calcs[calc.UserID]...)
	return nil
}

func (r *HistoryRepository) ListRecent(_ context.Context, userID int64, limit int) ([]domain.BolusCalculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	calcs := r.calcs[userID]
	if len(calcs) > limit {
		calcs = calcs[:limit]
	}
	out := make([]domain.BolusCalculation, len(calcs))
	copy(out, calcs)
	return out, nil
}

func (r *HistoryRepository) TrimToRecent(_ context.Context, userID int64, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if calcs := r.calcs[userID]; len(calcs) > keep {
		r.calcs[userID] = calcs[:keep:keep]
	}
	return nil
}
