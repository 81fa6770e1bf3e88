package interfaces

import (
	"context"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/services"
)

// CatalogServiceInterface defines the contract for catalog operations.
type CatalogServiceInterface interface {
	AddProduct(ctx context.Context, userID int64, input domain.ProductInput) (*domain.Product, error)
	AddFromNutritionRecord(ctx context.Context, userID int64, rec domain.NutritionRecord) (*domain.Product, error)
	UpdateProduct(ctx context.Context, userID int64, id string, input domain.ProductInput) (*domain.Product, error)
	RemoveProduct(ctx context.Context, userID int64, id string) error
	Find(ctx context.Context, userID int64, id string) (*domain.Product, error)
	List(ctx context.Context, userID int64, filter domain.ProductFilter, sortBy domain.ProductSort) ([]domain.Product, error)
	SeedDefaults(ctx context.Context, userID int64) error
}

// DosingServiceInterface defines the contract for dosing parameter operations.
type DosingServiceInterface interface {
	Get(ctx context.Context, userID int64) (*domain.DosingParameters, error)
	Set(ctx context.Context, userID int64, update domain.DosingUpdate) (*domain.DosingParameters, error)
}

// MealServiceInterface defines the contract for meal composition operations.
type MealServiceInterface interface {
	AddEntry(userID int64, productID string, quantity float64)
	Entries(userID int64) []domain.MealEntry
	AdjustQuantity(userID int64, index int, delta float64) error
	SetQuantity(userID int64, index int, value float64) error
	RemoveEntry(userID int64, index int) error
	Clear(userID int64)
	TotalCarbs(ctx context.Context, userID int64) (float64, error)
	ResolvedEntries(ctx context.Context, userID int64) ([]services.ResolvedMealEntry, error)
}

// BolusServiceInterface defines the contract for bolus calculation.
type BolusServiceInterface interface {
	CalculateAndRecord(ctx context.Context, userID int64, glucose, manualExchangeUnits float64) (*domain.BolusCalculation, error)
}

// HistoryServiceInterface defines the contract for dose history reads.
type HistoryServiceInterface interface {
	List(ctx context.Context, userID int64) ([]domain.BolusCalculation, error)
}

// AIServiceInterface defines the contract for AI carb estimation.
type AIServiceInterface interface {
	EstimateCarbs(ctx context.Context, description string, useOpenAI bool) (*services.CarbEstimate, error)
}
