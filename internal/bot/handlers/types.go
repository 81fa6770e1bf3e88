package handlers

import (
	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers.
type Dependencies struct {
	Catalog  interfaces.CatalogServiceInterface
	Dosing   interfaces.DosingServiceInterface
	Meal     interfaces.MealServiceInterface
	Bolus    interfaces.BolusServiceInterface
	History  interfaces.HistoryServiceInterface
	Resolver domain.BarcodeResolver
	AI       interfaces.AIServiceInterface // nil when no API key is configured

	// SeedSamples installs the starter catalog on /start (session-only mode).
	SeedSamples bool
}
