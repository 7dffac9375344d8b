package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, category, species, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCatalogEntry), args.Error(1)
}

func (m *mockRepository) ListEntries(ctx context.Context, filter domain.CatalogFilter) ([]*domain.ServiceCatalogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceCatalogEntry), args.Error(1)
}

func (m *mockRepository) UpsertEntry(ctx context.Context, entry *domain.ServiceCatalogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepository) ListAddons(ctx context.Context) ([]*domain.Addon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Addon), args.Error(1)
}

func newMemoryService() (*Service, *rtdb.Memory) {
	store := rtdb.NewMemory()
	return NewService(catalogRepo.NewRepository(store, logger.NewNop()), logger.NewNop()), store
}

func TestService_UpsertEntry_TieredGroomingRoundTrip(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	saved, err := svc.UpsertEntry(ctx, "grooming", "dog", "full-groom", &models.UpsertEntryRequest{
		Name:    "Full Grooming",
		Pricing: map[string]float64{"small": 40, "medium": 55, "large": 70},
	})
	require.NoError(t, err)
	assert.Equal(t, "Grooming", saved.Category)
	require.NotNil(t, saved.Price)
	assert.Equal(t, 40.0, *saved.Price)
	assert.True(t, saved.RequiresSize)
	require.NotNil(t, saved.DisplayPrice)
	assert.True(t, saved.DisplayPrice.StartingFrom)

	got, err := svc.GetEntry(ctx, "GROOMING", "dog", "full-groom")
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.Pricing["medium"])
	assert.Equal(t, 40.0, got.DisplayPrice.Amount)
}

func TestService_UpsertEntry_Boarding(t *testing.T) {
	svc, _ := newMemoryService()

	saved, err := svc.UpsertEntry(context.Background(), "boarding", "cat", "b7", &models.UpsertEntryRequest{
		Name:            "Long stay",
		BoardingPackage: ptr.Ptr("7-Days+"),
		PricePerNight:   ptr.Ptr(25.0),
	})

	require.NoError(t, err)
	assert.True(t, saved.RequiresEndDate)
	assert.Equal(t, 150.0, saved.DisplayPrice.Amount)
	assert.Equal(t, domain.UnitTotalForPackage, saved.DisplayPrice.UnitLabel)
}

func TestService_UpsertEntry_BoardingPackageStoredCanonical(t *testing.T) {
	svc, store := newMemoryService()
	ctx := context.Background()

	saved, err := svc.UpsertEntry(ctx, "boarding", "dog", "b5", &models.UpsertEntryRequest{
		Name:            "Mid stay",
		BoardingPackage: ptr.Ptr("5 days"),
		PricePerNight:   ptr.Ptr(30.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, saved.DisplayPrice.Amount)

	raw, err := store.Get(ctx, "services/Boarding/dog/b5")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Mid stay","boardingPackage":"5-Days","pricePerNight":30}`, string(raw))
}

func TestService_UpsertEntry_Validation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		species  string
		id       string
		req      models.UpsertEntryRequest
		wantErr  error
	}{
		{"unknown category", "spa", "dog", "x", models.UpsertEntryRequest{Name: "Spa", Price: ptr.Ptr(10.0)}, ErrInvalidInput},
		{"bad id", "grooming", "dog", "a/b", models.UpsertEntryRequest{Name: "Bath", Price: ptr.Ptr(10.0)}, ErrInvalidInput},
		{"tiers for cat", "grooming", "cat", "x", models.UpsertEntryRequest{Name: "Bath", Pricing: map[string]float64{"small": 10}}, ErrInvalidInput},
		{"daycare without type", "daycare", "dog", "x", models.UpsertEntryRequest{Name: "Day", Price: ptr.Ptr(20.0)}, ErrInvalidInput},
		{"boarding unknown package", "boarding", "dog", "x", models.UpsertEntryRequest{Name: "Stay", BoardingPackage: ptr.Ptr("2-Weeks"), PricePerNight: ptr.Ptr(30.0)}, ErrInvalidInput},
		{"boarding with flat price", "boarding", "dog", "x", models.UpsertEntryRequest{Name: "Stay", BoardingPackage: ptr.Ptr("3-Days"), PricePerNight: ptr.Ptr(30.0), Price: ptr.Ptr(90.0)}, ErrInvalidInput},
		{"grooming without price", "grooming", "cat", "x", models.UpsertEntryRequest{Name: "Bath"}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			svc := NewService(repo, logger.NewNop())

			_, err := svc.UpsertEntry(context.Background(), tt.category, tt.species, tt.id, &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpsertEntry", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GetEntry_NotFound(t *testing.T) {
	svc, _ := newMemoryService()

	_, err := svc.GetEntry(context.Background(), "grooming", "dog", "missing")

	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestService_ListEntries_FiltersAndHidesBrokenPrice(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logger.NewNop())
	broken := &domain.ServiceCatalogEntry{ID: "b", Category: domain.CategoryDayCare, Species: domain.SpeciesDog, Name: "Broken"}
	ok := &domain.ServiceCatalogEntry{ID: "h", Category: domain.CategoryDayCare, Species: domain.SpeciesDog, Name: "Half", Price: ptr.Ptr(25.0)}

	repo.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.CatalogFilter) bool {
		return f.Category != nil && *f.Category == domain.CategoryDayCare && f.Species == nil
	})).Return([]*domain.ServiceCatalogEntry{broken, ok}, nil)

	resp, err := svc.ListEntries(context.Background(), &models.ListEntriesRequest{Category: ptr.Ptr("Day Care")})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Nil(t, resp.Entries[0].DisplayPrice)
	assert.Equal(t, domain.UnitPerDay, resp.Entries[1].DisplayPrice.UnitLabel)
}

func TestService_ListEntries_InvalidSpecies(t *testing.T) {
	svc := NewService(new(mockRepository), logger.NewNop())

	_, err := svc.ListEntries(context.Background(), &models.ListEntriesRequest{Species: ptr.Ptr("parrot")})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAddons_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListAddons", mock.Anything).Return(nil, errors.New("rtdb down"))

	_, err := NewService(repo, logger.NewNop()).ListAddons(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}
