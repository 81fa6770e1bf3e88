package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
)

// DosingService owns the caregiver-tunable clinical parameters.
type DosingService struct {
	repo domain.DosingRepository
}

// NewDosingService creates a new dosing parameters service.
func NewDosingService(repo domain.DosingRepository) *DosingService {
	return &DosingService{repo: repo}
}

// Get returns the user's parameters, installing defaults on first access.
func (s *DosingService) Get(ctx context.Context, userID int64) (*domain.DosingParameters, error) {
	params, err := s.repo.Get(ctx, userID)
	if err == nil {
		return params, nil
	}
	if !errors.Is(err, domain.ErrParametersNotFound) {
		return nil, fmt.Errorf("failed to get dosing parameters: %w", err)
	}

	defaults := domain.DefaultDosingParameters(userID)
	defaults.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, &defaults); err != nil {
		return nil, fmt.Errorf("failed to save default dosing parameters: %w", err)
	}
	return &defaults, nil
}

// Set applies a partial or full parameter edit. Validation happens before
// anything is committed: a rejected update leaves the stored values intact.
func (s *DosingService) Set(ctx context.Context, userID int64, update domain.DosingUpdate) (*domain.DosingParameters, error) {
	if err := validateDosingUpdate(update); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := *current
	if update.TargetGlucose != nil {
		next.TargetGlucose = *update.TargetGlucose
	}
	if update.ICR != nil {
		next.ICR = *update.ICR
	}
	if update.ISF != nil {
		next.ISF = *update.ISF
	}
	if update.InsulinDuration != nil {
		next.InsulinDuration = *update.InsulinDuration
	}
	next.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save dosing parameters: %w", err)
	}
	return &next, nil
}

func validateDosingUpdate(update domain.DosingUpdate) error {
	for _, field := range []struct {
		name  string
		value *float64
	}{
		{"target glucose", update.TargetGlucose},
		{"insulin-to-carb ratio", update.ICR},
		{"insulin sensitivity factor", update.ISF},
	} {
		if field.value == nil {
			continue
		}
		if math.IsNaN(*field.value) || math.IsInf(*field.value, 0) || *field.value <= 0 {
			return apperrors.NewValidationError(field.name + " must be a positive number")
		}
	}
	if update.InsulinDuration != nil && *update.InsulinDuration <= 0 {
		return apperrors.NewValidationError("insulin action duration must be positive")
	}
	return nil
}
