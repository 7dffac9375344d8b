package get_quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *UseCase {
	t.Helper()
	ctx := context.Background()
	store := rtdb.NewMemory()
	require.NoError(t, store.Set(ctx, "services/Grooming/dog/full-groom", map[string]interface{}{
		"name":    "Full Grooming",
		"pricing": map[string]interface{}{"small": 40, "medium": 55, "large": 70},
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/cat/b3", map[string]interface{}{
		"name": "Short stay", "boardingPackage": "3-Days", "pricePerNight": 20,
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/cat/b7", map[string]interface{}{
		"name": "Long stay", "boardingPackage": "7-Days+", "pricePerNight": 20,
	}))
	require.NoError(t, store.Set(ctx, "addons/nails", map[string]interface{}{"name": "Nail trim", "price": 10}))
	return NewUseCase(catalogRepo.NewRepository(store, logger.NewNop()), logger.NewNop())
}

func TestUseCase_TieredStartingFrom(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryGrooming, Species: domain.SpeciesDog, ServiceID: "full-groom",
	})
	require.NoError(t, err)
	assert.True(t, resp.StartingFrom)
	assert.True(t, resp.RequiresSize)
	assert.Equal(t, 40.0, resp.Amount)

	resp, err = uc.Execute(context.Background(), &Request{
		Category: domain.CategoryGrooming, Species: domain.SpeciesDog, ServiceID: "full-groom",
		Size: ptr.Ptr(domain.SizeLarge), AddonIDs: []string{"nails", "nails"},
	})
	require.NoError(t, err)
	assert.False(t, resp.StartingFrom)
	assert.Equal(t, 70.0, resp.Amount)
	assert.Equal(t, 10.0, resp.AddonAmount)
	assert.Equal(t, 80.0, resp.TotalAmount)
	assert.Nil(t, resp.Stay)
}

func TestUseCase_BoardingStay(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryBoarding, Species: domain.SpeciesCat, ServiceID: "b3", StartDate: ptr.Ptr(jan1),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Stay)
	assert.False(t, resp.Stay.Editable)
	assert.Equal(t, "2024-01-03", resp.Stay.EndDate.Format(domain.DateFormat))
	assert.Equal(t, 2, *resp.Stay.Nights)
	assert.Equal(t, 40.0, resp.Amount)
}

func TestUseCase_LongStayWithoutEndDateIsStartingFrom(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryBoarding, Species: domain.SpeciesCat, ServiceID: "b7", StartDate: ptr.Ptr(jan1),
	})

	require.NoError(t, err)
	assert.True(t, resp.Stay.Editable)
	assert.Nil(t, resp.Stay.EndDate)
	assert.Equal(t, "2024-01-07", resp.Stay.MinEndDate.Format(domain.DateFormat))
	assert.True(t, resp.StartingFrom)
	assert.Equal(t, 120.0, resp.Amount)
}

func TestUseCase_Errors(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryBoarding, Species: domain.SpeciesCat, ServiceID: "b7",
		StartDate: ptr.Ptr(jan1), EndDate: ptr.Ptr(jan1.AddDate(0, 0, 3)),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{Category: domain.CategoryGrooming, Species: domain.SpeciesCat, ServiceID: "full-groom"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{Category: "Spa", Species: domain.SpeciesCat, ServiceID: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Category: domain.CategoryGrooming, Species: domain.SpeciesDog, ServiceID: "full-groom", AddonIDs: []string{"massage"},
	})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
