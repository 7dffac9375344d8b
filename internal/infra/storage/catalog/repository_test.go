package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	"github.com/m04kA/SMC-PetCareService/internal/service/pricing"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(string, ...interface{}) {}

func seededStore(t *testing.T) *rtdb.Memory {
	t.Helper()
	ctx := context.Background()
	store := rtdb.NewMemory()

	require.NoError(t, store.Set(ctx, "services/grooming/dog/full-groom", map[string]interface{}{
		"name":     "Full Groom",
		"pricing":  map[string]interface{}{"Small": 40, "medium": "55", "large": 70},
		"duration": 90,
	}))
	require.NoError(t, store.Set(ctx, "services/Grooming/cat/bath", map[string]interface{}{
		"name":  "Bath",
		"Price": 30,
	}))
	require.NoError(t, store.Set(ctx, "services/day care/dog/half", map[string]interface{}{
		"name":        "Half Day",
		"amount":      "25.50",
		"daycareType": "half-day",
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/dog/b5", map[string]interface{}{
		"name":            "Boarding 5",
		"boardingPackage": "5-Days",
		"pricePerNight":   30,
	}))
	require.NoError(t, store.Set(ctx, "addons/nails", map[string]interface{}{"name": "Nail trim", "Price": 10}))
	require.NoError(t, store.Set(ctx, "addons/teeth", map[string]interface{}{"name": "Teeth", "price": 12.5}))
	return store
}

func TestRepository_GetEntry_TieredWithBackfill(t *testing.T) {
	repo := NewRepository(seededStore(t), logger.NewNop())

	entry, err := repo.GetEntry(context.Background(), domain.CategoryGrooming, domain.SpeciesDog, "full-groom")

	require.NoError(t, err)
	assert.Equal(t, "Full Groom", entry.Name)
	assert.Equal(t, map[domain.SizeTier]float64{domain.SizeSmall: 40, domain.SizeMedium: 55, domain.SizeLarge: 70}, entry.Pricing)
	require.NotNil(t, entry.Price)
	assert.Equal(t, 40.0, *entry.Price)
	assert.Equal(t, 90, *entry.DurationMinutes)
}

func TestRepository_GetEntry_NormalizesVariants(t *testing.T) {
	repo := NewRepository(seededStore(t), logger.NewNop())
	ctx := context.Background()

	bath, err := repo.GetEntry(ctx, domain.CategoryGrooming, domain.SpeciesCat, "bath")
	require.NoError(t, err)
	assert.Equal(t, 30.0, *bath.Price)

	boarding, err := repo.GetEntry(ctx, domain.CategoryBoarding, domain.SpeciesDog, "b5")
	require.NoError(t, err)
	assert.Equal(t, domain.Boarding5Days, *boarding.BoardingPackage)
	assert.Equal(t, 30.0, *boarding.PricePerNight)
}

func TestRepository_GetEntry_BoardingPackageLabelVariants(t *testing.T) {
	ctx := context.Background()
	store := rtdb.NewMemory()
	require.NoError(t, store.Set(ctx, "services/Boarding/dog/b5", map[string]interface{}{
		"name": "Boarding 5", "boardingPackage": "5 Days", "pricePerNight": 30,
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/dog/b7", map[string]interface{}{
		"name": "Boarding 7", "package": "7_days+", "pricePerNight": 30,
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/dog/b10", map[string]interface{}{
		"name": "Boarding 10", "boardingPackage": "10 Days", "pricePerNight": 30,
	}))
	log := &recordingLogger{}
	repo := NewRepository(store, log)

	b5, err := repo.GetEntry(ctx, domain.CategoryBoarding, domain.SpeciesDog, "b5")
	require.NoError(t, err)
	assert.Equal(t, domain.Boarding5Days, *b5.BoardingPackage)
	quote, err := pricing.ResolvePrice(b5, domain.SpeciesDog, nil)
	require.NoError(t, err)
	assert.Equal(t, 120.0, quote.Amount)
	assert.Equal(t, 4, *quote.Nights)

	b7, err := repo.GetEntry(ctx, domain.CategoryBoarding, domain.SpeciesDog, "b7")
	require.NoError(t, err)
	assert.Equal(t, domain.Boarding7DaysPlus, *b7.BoardingPackage)
	assert.True(t, b7.RequiresEndDate())
	assert.Empty(t, log.warnings)

	// Неизвестная метка сохраняется, цена считается по пакету 3-Days
	b10, err := repo.GetEntry(ctx, domain.CategoryBoarding, domain.SpeciesDog, "b10")
	require.NoError(t, err)
	assert.Equal(t, domain.BoardingPackage("10 Days"), *b10.BoardingPackage)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], `"10 Days"`)
	quote, err = pricing.ResolvePrice(b10, domain.SpeciesDog, nil)
	require.NoError(t, err)
	assert.Equal(t, 60.0, quote.Amount)
}

func TestRepository_GetEntry_NotFound(t *testing.T) {
	repo := NewRepository(seededStore(t), logger.NewNop())

	_, err := repo.GetEntry(context.Background(), domain.CategoryGrooming, domain.SpeciesDog, "missing")

	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestRepository_ListEntries_CanonicalizesCategories(t *testing.T) {
	repo := NewRepository(seededStore(t), logger.NewNop())

	all, err := repo.ListEntries(context.Background(), domain.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	daycare, err := repo.ListEntries(context.Background(), domain.CatalogFilter{Category: ptr.Ptr(domain.CategoryDayCare)})
	require.NoError(t, err)
	require.Len(t, daycare, 1)
	assert.Equal(t, domain.CategoryDayCare, daycare[0].Category)
	assert.Equal(t, domain.DaycareHalfDay, *daycare[0].DaycareType)
	assert.Equal(t, 25.5, *daycare[0].Price)

	cats, err := repo.ListEntries(context.Background(), domain.CatalogFilter{Species: ptr.Ptr(domain.SpeciesCat)})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "bath", cats[0].ID)
}

func TestRepository_UpsertEntry_WritesCanonicalPath(t *testing.T) {
	store := rtdb.NewMemory()
	repo := NewRepository(store, logger.NewNop())
	ctx := context.Background()

	entry := &domain.ServiceCatalogEntry{
		ID:          "full",
		Category:    domain.CategoryDayCare,
		Species:     domain.SpeciesDog,
		Name:        "Full Day",
		Price:       ptr.Ptr(45.0),
		DaycareType: ptr.Ptr(domain.DaycareFullDay),
	}
	require.NoError(t, repo.UpsertEntry(ctx, entry))

	raw, err := store.Get(ctx, "services/DayCare/dog/full")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Full Day","price":45,"daycareType":"FullDay"}`, string(raw))

	got, err := repo.GetEntry(ctx, domain.CategoryDayCare, domain.SpeciesDog, "full")
	require.NoError(t, err)
	assert.Equal(t, 45.0, *got.Price)
}

func TestRepository_Addons(t *testing.T) {
	repo := NewRepository(seededStore(t), logger.NewNop())
	ctx := context.Background()

	addons, err := repo.GetAddons(ctx, []string{"teeth", "nails"})
	require.NoError(t, err)
	require.Len(t, addons, 2)
	assert.Equal(t, 12.5, addons[0].Price)
	assert.Equal(t, 10.0, addons[1].Price)

	_, err = repo.GetAddons(ctx, []string{"spa"})
	assert.ErrorIs(t, err, ErrAddonNotFound)

	all, err := repo.ListAddons(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_StoreFailure(t *testing.T) {
	store := seededStore(t)
	store.FailWith(errors.New("offline"))
	repo := NewRepository(store, logger.NewNop())

	_, err := repo.GetEntry(context.Background(), domain.CategoryGrooming, domain.SpeciesDog, "full-groom")

	assert.ErrorIs(t, err, ErrStore)
}
