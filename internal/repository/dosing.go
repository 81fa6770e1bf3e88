package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// DosingRepository is the Postgres-backed store for per-user dosing
// parameters.
type DosingRepository struct {
	db *gorm.DB
}

// NewDosingRepository creates a new dosing parameters repository.
func NewDosingRepository(db *gorm.DB) *DosingRepository {
	return &DosingRepository{db: db}
}

func (r *DosingRepository) Get(ctx context.Context, userID int64) (*domain.DosingParameters, error) {
	var params domain.DosingParameters
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&params).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrParametersNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dosing parameters: %w", err)
	}
	return &params, nil
}

func (r *DosingRepository) Save(ctx context.Context, params *domain.DosingParameters) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(params).Error
	if err != nil {
		return fmt.Errorf("failed to save dosing parameters: %w", err)
	}
	return nil
}
