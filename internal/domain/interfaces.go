package domain

import (
	"context"
	"errors"
)

// Sentinel errors returned by repositories. Services translate them into
// typed application errors before they reach a caller.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrParametersNotFound  = errors.New("dosing parameters not found")
	ErrCalculationNotFound = errors.New("calculation not found")
)

// ProductRepository stores catalog products per user.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	// Update replaces the stored record; ErrProductNotFound if absent.
	Update(ctx context.Context, product *Product) error
	// Delete removes the record; ErrProductNotFound if absent.
	Delete(ctx context.Context, userID int64, id string) error
	Get(ctx context.Context, userID int64, id string) (*Product, error)
	ListByUser(ctx context.Context, userID int64) ([]Product, error)
}

// DosingRepository stores the single per-user parameter record.
type DosingRepository interface {
	Get(ctx context.Context, userID int64) (*DosingParameters, error)
	// Save creates or overwrites the user's record.
	Save(ctx context.Context, params *DosingParameters) error
}

// HistoryRepository stores bolus calculation results.
type HistoryRepository interface {
	Insert(ctx context.Context, calc *BolusCalculation) error
	// ListRecent returns up to limit results, most recent first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]BolusCalculation, error)
	// TrimToRecent drops everything but the keep most recent results.
	TrimToRecent(ctx context.Context, userID int64, keep int) error
}

// BarcodeResolver looks a packaged product up in an external food database.
type BarcodeResolver interface {
	ResolveByBarcode(ctx context.Context, code string) (*NutritionRecord, error)
}
