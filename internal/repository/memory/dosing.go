package memory

import (
	"context"
	"sync"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// DosingRepository keeps per-user dosing parameters in memory.
type DosingRepository struct {
	mu     sync.RWMutex
	params map[int64]domain.DosingParameters
}

// NewDosingRepository creates an empty in-memory parameter store.
func NewDosingRepository() *DosingRepository {
	return &DosingRepository{
		params: make(map[int64]domain.DosingParameters),
	}
}

func (r *DosingRepository) Get(_ context.Context, userID int64) (*domain.DosingParameters, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	params, ok := r.params[userID]
	if !ok {
		return nil, domain.ErrParametersNotFound
	}
	return &params, nil
}

func (r *DosingRepository) Save(_ context.Context, params *domain.DosingParameters) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[params.UserID] = *params
	return nil
}
