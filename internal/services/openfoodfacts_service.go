package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
)

// OpenFoodFactsService resolves packaged products by barcode through the
// public OpenFoodFacts database.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFactsService creates a resolver against the given base URL
// (the public instance when empty).
func NewOpenFoodFactsService(baseURL string) *OpenFoodFactsService {
	if baseURL == "" {
		baseURL = "https://world.openfoodfacts.org"
	}
	return &OpenFoodFactsService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type openFoodFactsResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			Carbohydrates100g *float64 `json:"carbohydrates_100g"`
			Proteins100g      *float64 `json:"proteins_100g"`
			Fat100g           *float64 `json:"fat_100g"`
			EnergyKcal100g    *float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// ResolveByBarcode looks a barcode up and returns the nutrition facts per
// 100 g, or a not-found error when the database has no such product.
func (s *OpenFoodFactsService) ResolveByBarcode(ctx context.Context, code string) (*domain.NutritionRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("barcode must not be empty")
	}

	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "OpenFoodFacts")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "OpenFoodFacts")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalAPIError(
			fmt.Errorf("unexpected status %d", resp.StatusCode), "OpenFoodFacts")
	}

	var body openFoodFactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewExternalAPIError(err, "OpenFoodFacts")
	}

	if body.Status != 1 {
		return nil, apperrors.NewNotFoundError("product not found in food database")
	}

	name := strings.TrimSpace(body.Product.ProductName)
	if name == "" {
		name = "Unknown product"
	}

	record := &domain.NutritionRecord{
		Name:           name,
		Barcode:        code,
		Unit:           domain.UnitGrams,
		ProteinPer100:  body.Product.Nutriments.Proteins100g,
		FatPer100:      body.Product.Nutriments.Fat100g,
		CaloriesPer100: body.Product.Nutriments.EnergyKcal100g,
	}
	if body.Product.Nutriments.Carbohydrates100g != nil {
		record.CarbsPer100 = *body.Product.Nutriments.Carbohydrates100g
	}
	return record, nil
}
