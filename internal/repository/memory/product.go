// Package memory provides session-only repository implementations used when
// no database is configured. State lives for the lifetime of the process.
package memory

import (
	"context"
	"sync"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// ProductRepository keeps catalog products in memory, keyed by user.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]map[string]domain.Product
}

// NewProductRepository creates an empty in-memory product store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]map[string]domain.Product),
	}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.products[product.UserID] == nil {
		r.products[product.UserID] = make(map[string]domain.Product)
	}
	r.products[product.UserID][product.ID] = *product
	return nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.products[product.UserID]
	if _, ok := byID[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	byID[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, userID int64, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.products[userID]
	if _, ok := byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(byID, id)
	return nil
}

func (r *ProductRepository) Get(_ context.Context, userID int64, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[userID][id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *ProductRepository) ListByUser(_ context.Context, userID int64) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]domain.Product, 0, len(r.products[userID]))
	for _, product := range r.products[userID] {
		products = append(products, product)
	}
	return products, nil
}
