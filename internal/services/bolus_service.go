package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
)

// CarbExchangeGrams is the carbohydrate weight of one exchange unit (WW).
// Fixed domain constant, not configurable.
const CarbExchangeGrams = 10.0

// Calculate turns a glucose reading, the resolved carbohydrate total and the
// dosing parameters into a dose recommendation. Pure: it touches no state
// and records nothing.
func Calculate(glucose, totalCarbsGrams, manualExchangeUnits float64, params *domain.DosingParameters) (*domain.BolusCalculation, error) {
	if math.IsNaN(glucose) || math.IsInf(glucose, 0) || glucose <= 0 {
		return nil, apperrors.NewValidationError("invalid glucose reading")
	}
	if math.IsNaN(totalCarbsGrams) || totalCarbsGrams < 0 {
		return nil, apperrors.NewValidationError("carbohydrate total must be a non-negative number")
	}
	// Guaranteed positive by DosingService, re-checked so a bad caller can
	// never divide by zero here.
	if math.IsNaN(params.ICR) || params.ICR <= 0 {
		return nil, apperrors.NewValidationError("insulin-to-carb ratio must be positive")
	}
	if math.IsNaN(params.ISF) || params.ISF <= 0 {
		return nil, apperrors.NewValidationError("insulin sensitivity factor must be positive")
	}
	if math.IsNaN(manualExchangeUnits) || manualExchangeUnits < 0 {
		manualExchangeUnits = 0
	}

	effectiveCarbs := totalCarbsGrams + manualExchangeUnits*CarbExchangeGrams
	mealDose := effectiveCarbs / params.ICR
	correctionDose := (glucose - params.TargetGlucose) / params.ISF
	totalDose := math.Max(0, mealDose+correctionDose)

	return &domain.BolusCalculation{
		UserID:         params.UserID,
		Glucose:        glucose,
		Carbs:          effectiveCarbs,
		MealDose:       mealDose,
		CorrectionDose: correctionDose,
		TotalDose:      totalDose,
		CreatedAt:      time.Now(),
	}, nil
}

type dosingProvider interface {
	Get(ctx context.Context, userID int64) (*domain.DosingParameters, error)
}

type carbTotaler interface {
	TotalCarbs(ctx context.Context, userID int64) (float64, error)
}

type doseRecorder interface {
	Record(ctx context.Context, calc *domain.BolusCalculation) error
}

// BolusService composes the meal total, the dosing parameters and the pure
// calculation, then records the result in the dose history.
type BolusService struct {
	dosing  dosingProvider
	meal    carbTotaler
	history doseRecorder
}

// NewBolusService creates a new bolus calculation service.
func NewBolusService(dosing dosingProvider, meal carbTotaler, history doseRecorder) *BolusService {
	return &BolusService{
		dosing:  dosing,
		meal:    meal,
		history: history,
	}
}

// CalculateAndRecord runs one calculation for the user's current meal and
// appends the result to the dose history. On any failure the history is left
// untouched.
func (s *BolusService) CalculateAndRecord(ctx context.Context, userID int64, glucose, manualExchangeUnits float64) (*domain.BolusCalculation, error) {
	params, err := s.dosing.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dosing parameters: %w", err)
	}

	totalCarbs, err := s.meal.TotalCarbs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to total meal carbs: %w", err)
	}

	result, err := Calculate(glucose, totalCarbs, manualExchangeUnits, params)
	if err != nil {
		return nil, err
	}
	result.UserID = userID

	if err := s.history.Record(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to record calculation: %w", err)
	}
	return result, nil
}
