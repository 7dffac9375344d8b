package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

func tieredGrooming() *domain.ServiceCatalogEntry {
	return &domain.ServiceCatalogEntry{
		ID:       "full-groom",
		Category: domain.CategoryGrooming,
		Species:  domain.SpeciesDog,
		Pricing:  map[domain.SizeTier]float64{domain.SizeSmall: 40, domain.SizeMedium: 55, domain.SizeLarge: 70},
	}
}

func boarding(pkg domain.BoardingPackage, perNight float64) *domain.ServiceCatalogEntry {
	return &domain.ServiceCatalogEntry{
		ID:              "boarding",
		Category:        domain.CategoryBoarding,
		Species:         domain.SpeciesDog,
		BoardingPackage: &pkg,
		PricePerNight:   &perNight,
	}
}

func TestResolvePrice_TieredDogMedium(t *testing.T) {
	quote, err := ResolvePrice(tieredGrooming(), domain.SpeciesDog, ptr.Ptr(domain.SizeMedium))

	require.NoError(t, err)
	assert.Equal(t, 55.00, quote.Amount)
	assert.False(t, quote.StartingFrom)
	assert.Equal(t, domain.UnitFlat, quote.UnitLabel)
}

func TestResolvePrice_TieredDogWithoutSizeIsStartingFrom(t *testing.T) {
	quote, err := ResolvePrice(tieredGrooming(), domain.SpeciesDog, nil)

	require.NoError(t, err)
	assert.Equal(t, 40.00, quote.Amount)
	assert.True(t, quote.StartingFrom)
}

func TestResolvePrice_TieredEntryForCatUsesFlatPrice(t *testing.T) {
	entry := tieredGrooming()
	entry.Price = ptr.Ptr(35.0)

	quote, err := ResolvePrice(entry, domain.SpeciesCat, nil)

	require.NoError(t, err)
	assert.Equal(t, 35.0, quote.Amount)
	assert.False(t, quote.StartingFrom)
}

func TestResolvePrice_Boarding(t *testing.T) {
	tests := []struct {
		name       string
		pkg        domain.BoardingPackage
		override   *int
		wantAmount float64
		wantNights int
	}{
		{"3-Days", domain.Boarding3Days, nil, 60, 2},
		{"5-Days", domain.Boarding5Days, nil, 120, 4},
		{"7-Days+ minimum", domain.Boarding7DaysPlus, nil, 180, 6},
		{"7-Days+ longer stay", domain.Boarding7DaysPlus, ptr.Ptr(9), 270, 9},
		{"7-Days+ override below minimum", domain.Boarding7DaysPlus, ptr.Ptr(3), 180, 6},
		{"5-Days ignores override", domain.Boarding5Days, ptr.Ptr(9), 120, 4},
		{"unknown label falls back to 3-Days", "10-Days", nil, 60, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ResolvePriceWithOptions(boarding(tt.pkg, 30), domain.SpeciesDog, nil, Options{Nights: tt.override})

			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, quote.Amount)
			require.NotNil(t, quote.Nights)
			assert.Equal(t, tt.wantNights, *quote.Nights)
			assert.Equal(t, domain.UnitTotalForPackage, quote.UnitLabel)
		})
	}
}

func TestResolvePrice_InvalidPrice(t *testing.T) {
	tests := []struct {
		name  string
		entry *domain.ServiceCatalogEntry
	}{
		{"daycare without price", &domain.ServiceCatalogEntry{Category: domain.CategoryDayCare}},
		{"zero flat grooming", &domain.ServiceCatalogEntry{Category: domain.CategoryGrooming, Price: ptr.Ptr(0.0)}},
		{"negative flat", &domain.ServiceCatalogEntry{Category: domain.CategoryGrooming, Price: ptr.Ptr(-10.0)}},
		{"infinite flat", &domain.ServiceCatalogEntry{Category: domain.CategoryDayCare, Price: ptr.Ptr(math.Inf(1))}},
		{"boarding without per-night price", &domain.ServiceCatalogEntry{Category: domain.CategoryBoarding}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePrice(tt.entry, domain.SpeciesCat, nil)

			assert.ErrorIs(t, err, ErrInvalidPrice)
			assert.ErrorIs(t, err, domain.ErrInvalidPrice)
		})
	}
}

func TestResolvePrice_DayCareLabel(t *testing.T) {
	entry := &domain.ServiceCatalogEntry{Category: domain.CategoryDayCare, Price: ptr.Ptr(25.556)}

	quote, err := ResolvePrice(entry, domain.SpeciesDog, nil)

	require.NoError(t, err)
	assert.Equal(t, 25.56, quote.Amount)
	assert.Equal(t, domain.UnitPerDay, quote.UnitLabel)
}

func TestTotals(t *testing.T) {
	amounts, err := Totals(55, nil)
	require.NoError(t, err)
	assert.Equal(t, Amounts{Base: 55, Addon: 0, Total: 55}, amounts)

	amounts, err = Totals(55, []*domain.Addon{{ID: "a", Price: 10.1}, {ID: "b", Price: 0.2}})
	require.NoError(t, err)
	assert.Equal(t, 10.3, amounts.Addon)
	assert.Equal(t, 65.3, amounts.Total)

	_, err = Totals(55, []*domain.Addon{{ID: "free", Price: 0}})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNightsForPackage(t *testing.T) {
	assert.Equal(t, 2, NightsForPackage("3-Days"))
	assert.Equal(t, 4, NightsForPackage("5-Days"))
	assert.Equal(t, 6, NightsForPackage("7-Days+"))
	assert.Equal(t, 2, NightsForPackage(""))
	assert.Equal(t, 2, NightsForPackage("garbage"))
	assert.Equal(t, 4, NightsForPackage("5 Days"))
	assert.Equal(t, 6, NightsForPackage("7 days+"))
}
