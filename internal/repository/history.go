package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// HistoryRepository is the Postgres-backed dose history store.
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(ctx context.Context, calc *domain.BolusCalculation) error {
	if err := r.db.WithContext(ctx).Create(calc).Error; err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.BolusCalculation, error) {
	var calcs []domain.BolusCalculation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&calcs).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return calcs, nil
}

func (r *HistoryRepository) TrimToRecent(ctx context.Context, userID int64, keep int) error {
	recent := r.db.
		Model(&domain.BolusCalculation{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(keep)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", userID, recent).
		Delete(&domain.BolusCalculation{}).Error
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}
