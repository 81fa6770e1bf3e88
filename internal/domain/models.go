package domain

import (
	"time"
)

// Unit is the measurement basis a product's nutrition facts refer to.
// Nutrient values are always given per 100 of this unit.
type Unit string

const (
	UnitGrams       Unit = "g"
	UnitMilliliters Unit = "ml"
)

// Category groups catalog products.
type Category string

const (
	CategoryBakery     Category = "bakery"
	CategoryFruit      Category = "fruit"
	CategoryVegetables Category = "vegetables"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategorySweets     Category = "sweets"
	CategoryDrinks     Category = "drinks"
	CategoryOther      Category = "other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryBakery,
		CategoryFruit,
		CategoryVegetables,
		CategoryDairy,
		CategoryMeat,
		CategorySweets,
		CategoryDrinks,
		CategoryOther,
	}
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a food catalog entry. Nutrient fields other than carbs are
// optional; a nil pointer means the value was never provided.
type Product struct {
	ID             string `gorm:"primaryKey"`
	UserID         int64  `gorm:"index"`
	Name           string
	Barcode        string `gorm:"index"`
	Unit           Unit
	CarbsPer100    float64
	ProteinPer100  *float64
	FatPer100      *float64
	CaloriesPer100 *float64
	Category       Category
	Notes          string
	CreatedAt      time.Time
}

// ProductInput carries the caller-editable fields for add and update.
type ProductInput struct {
	Name           string
	Barcode        string
	Unit           Unit
	CarbsPer100    float64
	ProteinPer100  *float64
	FatPer100      *float64
	CaloriesPer100 *float64
	Category       Category
	Notes          string
}

// ProductFilter narrows a catalog listing. Zero values match everything.
type ProductFilter struct {
	Name     string   // case-insensitive substring match
	Category Category // exact match
}

// ProductSort selects the ordering of a catalog listing.
type ProductSort string

const (
	SortCreatedDesc ProductSort = "date-desc"
	SortCreatedAsc  ProductSort = "date-asc"
	SortNameAsc     ProductSort = "name-asc"
	SortNameDesc    ProductSort = "name-desc"
)

// DosingParameters is the single per-user clinical configuration record.
// All four values must be strictly positive.
type DosingParameters struct {
	ID              uint  `gorm:"primaryKey"`
	UserID          int64 `gorm:"uniqueIndex"`
	TargetGlucose   float64 // mg/dL
	ICR             float64 // grams of carbohydrate per unit of insulin
	ISF             float64 // mg/dL glucose drop per unit of insulin
	InsulinDuration int     // minutes of insulin action
	UpdatedAt       time.Time
}

// Defaults installed for a user on first access.
const (
	DefaultTargetGlucose   = 100.0
	DefaultICR             = 10.0
	DefaultISF             = 50.0
	DefaultInsulinDuration = 240
)

// DefaultDosingParameters returns the startup configuration for a user.
func DefaultDosingParameters(userID int64) DosingParameters {
	return DosingParameters{
		UserID:          userID,
		TargetGlucose:   DefaultTargetGlucose,
		ICR:             DefaultICR,
		ISF:             DefaultISF,
		InsulinDuration: DefaultInsulinDuration,
	}
}

// DosingUpdate carries a partial or full parameter edit. Nil fields keep
// their current value.
type DosingUpdate struct {
	TargetGlucose   *float64
	ICR             *float64
	ISF             *float64
	InsulinDuration *int
}

// MealEntry is one line of the meal being composed. The product reference is
// weak: the product may be deleted independently, in which case the entry
// resolves to a zero carbohydrate contribution.
type MealEntry struct {
	ProductID string
	Quantity  float64 // in the product's declared unit, clamped at 0
}

// BolusCalculation is the outcome of one bolus calculation and the unit
// stored in the dose history. MealDose and CorrectionDose keep their signed,
// unclamped values so the breakdown stays meaningful when TotalDose is
// floored at zero.
type BolusCalculation struct {
	ID             uint  `gorm:"primaryKey"`
	UserID         int64 `gorm:"index"`
	Glucose        float64
	Carbs          float64 // effective carbohydrate grams used
	MealDose       float64
	CorrectionDose float64
	TotalDose      float64
	CreatedAt      time.Time
}

// NutritionRecord is the shape the external barcode resolver hands back.
type NutritionRecord struct {
	Name           string
	Barcode        string
	Unit           Unit
	CarbsPer100    float64
	ProteinPer100  *float64
	FatPer100      *float64
	CaloriesPer100 *float64
}

// CarbContribution returns the carbohydrate grams a quantity of a product
// adds to a meal. Nutrition labels scale linearly per 100 units.
func CarbContribution(p *Product, quantity float64) float64 {
	return p.CarbsPer100 / 100 * quantity
}
