package domain

import (
	"math"
	"strings"
)

// Category represents a bookable service category
type Category string

const (
	CategoryGrooming Category = "Grooming"
	CategoryDayCare  Category = "DayCare"
	CategoryBoarding Category = "Boarding"
)

// ParseCategory canonicalizes a category name.
// Matching is case-insensitive and ignores spaces, dashes and underscores ("day care" -> DayCare).
func ParseCategory(s string) (Category, bool) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "grooming":
		return CategoryGrooming, true
	case "daycare":
		return CategoryDayCare, true
	case "boarding":
		return CategoryBoarding, true
	}
	return "", false
}

// IsValid returns true if the category is one of the canonical values
func (c Category) IsValid() bool {
	switch c {
	case CategoryGrooming, CategoryDayCare, CategoryBoarding:
		return true
	}
	return false
}

// Species of a pet
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ParseSpecies canonicalizes a species name
func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	}
	return "", false
}

// SizeTier is a size category used by tiered pricing
type SizeTier string

const (
	SizeSmall  SizeTier = "small"
	SizeMedium SizeTier = "medium"
	SizeLarge  SizeTier = "large"
)

// SizeTiers lists tiers in ascending order
var SizeTiers = []SizeTier{SizeSmall, SizeMedium, SizeLarge}

// ParseSizeTier canonicalizes a size tier
func ParseSizeTier(s string) (SizeTier, bool) {
	switch SizeTier(strings.ToLower(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, true
	case SizeMedium:
		return SizeMedium, true
	case SizeLarge:
		return SizeLarge, true
	}
	return "", false
}

// DaycareType distinguishes half-day and full-day daycare
type DaycareType string

const (
	DaycareHalfDay DaycareType = "HalfDay"
	DaycareFullDay DaycareType = "FullDay"
)

// ParseDaycareType accepts "HalfDay", "half-day", "half day" and so on
func ParseDaycareType(s string) (DaycareType, bool) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "halfday":
		return DaycareHalfDay, true
	case "fullday":
		return DaycareFullDay, true
	}
	return "", false
}

// BoardingPackage is a named boarding duration tier
type BoardingPackage string

const (
	Boarding3Days     BoardingPackage = "3-Days"
	Boarding5Days     BoardingPackage = "5-Days"
	Boarding7DaysPlus BoardingPackage = "7-Days+"
)

// ParseBoardingPackage canonicalizes a package label.
// Case, spaces, dashes and underscores are ignored ("5 days" -> 5-Days, "7 Days+" -> 7-Days+).
func ParseBoardingPackage(s string) (BoardingPackage, bool) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "3days":
		return Boarding3Days, true
	case "5days":
		return Boarding5Days, true
	case "7days+", "7days", "7+days":
		return Boarding7DaysPlus, true
	}
	return "", false
}

// HasSelectableEndDate returns true when the guest picks the end date
func (p BoardingPackage) HasSelectableEndDate() bool {
	return p == Boarding7DaysPlus
}

// ServiceCatalogEntry is a bookable offering from the catalog.
// Exactly one of Price / Pricing resolves to a usable value for a given species.
type ServiceCatalogEntry struct {
	ID       string
	Category Category
	Species  Species
	Name     string

	Price   *float64             // flat price, nil when tiered pricing is used
	Pricing map[SizeTier]float64 // Grooming/dog only

	DurationMinutes *int             // Grooming only
	DaycareType     *DaycareType     // DayCare only
	BoardingPackage *BoardingPackage // Boarding only
	PricePerNight   *float64         // Boarding only
}

// HasTieredPricing returns true if at least one tier has a positive finite price
func (e *ServiceCatalogEntry) HasTieredPricing() bool {
	_, ok := e.MinTierPrice()
	return ok
}

// MinTierPrice returns the lowest positive tier price
func (e *ServiceCatalogEntry) MinTierPrice() (float64, bool) {
	lowest := math.Inf(1)
	found := false
	for _, v := range e.Pricing {
		if isPositiveFinite(v) && v < lowest {
			lowest = v
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return lowest, true
}

// TierPrice returns the price for a tier if it is configured and positive
func (e *ServiceCatalogEntry) TierPrice(size SizeTier) (float64, bool) {
	v, ok := e.Pricing[size]
	if !ok || !isPositiveFinite(v) {
		return 0, false
	}
	return v, true
}

// RequiresSizeTier returns true if booking this entry for the species needs a concrete size
func (e *ServiceCatalogEntry) RequiresSizeTier(species Species) bool {
	return e.Category != CategoryBoarding && species == SpeciesDog && e.HasTieredPricing()
}

// RequiresEndDate returns true for boarding packages with a guest-selected end date
func (e *ServiceCatalogEntry) RequiresEndDate() bool {
	return e.Category == CategoryBoarding && e.BoardingPackage != nil && e.BoardingPackage.HasSelectableEndDate()
}

// BackfillPrice sets Price to the minimum tier for tiered entries without a flat price
func (e *ServiceCatalogEntry) BackfillPrice() {
	if e.Price != nil {
		return
	}
	if min, ok := e.MinTierPrice(); ok {
		e.Price = &min
	}
}

// Addon is an optional extra priced on top of the base service
type Addon struct {
	ID    string
	Name  string
	Price float64
}

// CatalogFilter narrows catalog listings
type CatalogFilter struct {
	Category *Category
	Species  *Species
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
