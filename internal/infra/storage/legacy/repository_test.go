package legacy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

var slotDate = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *rtdb.Memory {
	t.Helper()
	ctx := context.Background()
	store := rtdb.NewMemory()

	require.NoError(t, store.Set(ctx, "bookings/k1", map[string]interface{}{
		"service": "Bath", "date": "2026-07-10", "time": "10:00", "status": "scheduled",
		"pet": "Rex", "userId": "owner-1", "Price": "30", "createdAt": 1780000000000,
	}))
	require.NoError(t, store.Set(ctx, "bookings/k2", map[string]interface{}{
		"serviceName": "Bath", "date": "2026-07-10", "time": "10:00", "status": "cancelled",
		"ownerId": "owner-2",
	}))
	require.NoError(t, store.Set(ctx, "bookings/k3", map[string]interface{}{
		"serviceName": "Trim", "date": "2026-07-11", "time": "09:00",
		"ownerId": "owner-1",
	}))
	require.NoError(t, store.Set(ctx, "bookings/broken", map[string]interface{}{
		"serviceName": "Trim", "date": "someday",
	}))
	return store
}

func TestRepository_List_ByDateNormalizesFields(t *testing.T) {
	repo := NewRepository(seededStore(t))

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{Date: &slotDate})

	require.NoError(t, err)
	require.Len(t, list, 1)
	a := list[0]
	assert.Equal(t, "k1", a.ID)
	assert.Equal(t, domain.SourceLegacy, a.Source)
	assert.Equal(t, "Bath", a.ServiceName)
	assert.Equal(t, "Rex", a.PetName)
	assert.Equal(t, "owner-1", a.OwnerID)
	assert.Equal(t, 30.0, a.TotalAmount)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestRepository_List_IncludeTerminal(t *testing.T) {
	repo := NewRepository(seededStore(t))

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{Date: &slotDate, IncludeTerminal: true})

	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRepository_List_MissingStatusCountsAsActive(t *testing.T) {
	repo := NewRepository(seededStore(t))

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{ServiceName: ptr.Ptr("Trim")})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusScheduled, list[0].Status)
}

func TestRepository_RescheduleAndCancel(t *testing.T) {
	store := seededStore(t)
	repo := NewRepository(store)
	ctx := context.Background()
	newDate := slotDate.AddDate(0, 0, 3)

	require.NoError(t, repo.Reschedule(ctx, "k1", newDate, "15:00"))

	got, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, domain.SameDate(newDate, got.Date))
	assert.Equal(t, "15:00", got.Time)

	require.NoError(t, repo.Cancel(ctx, "k1", ptr.Ptr("duplicate")))
	got, err = repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, "duplicate", *got.CancellationReason)
	assert.NotNil(t, got.CancelledAt)
}

func TestRepository_NotFound(t *testing.T) {
	repo := NewRepository(seededStore(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.StatusCompleted), ErrBookingNotFound)

	_, err = repo.GetByID(ctx, "broken")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List_ByOwnerCoversBothFieldNames(t *testing.T) {
	repo := NewRepository(seededStore(t))
	owner := "owner-1"

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{OwnerID: &owner})

	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"k1", "k3"}, ids)
}

func TestRepository_List_CanonicalizesSlotTime(t *testing.T) {
	ctx := context.Background()
	store := rtdb.NewMemory()
	require.NoError(t, store.Set(ctx, "bookings/m1", map[string]interface{}{
		"serviceName": "Bath", "date": "2026-07-10", "time": "9:00", "ownerId": "owner-1",
	}))
	require.NoError(t, store.Set(ctx, "bookings/m2", map[string]interface{}{
		"serviceName": "Half Day", "date": "2026-07-10", "appointmentTime": "Half Day", "ownerId": "owner-2",
	}))
	require.NoError(t, store.Set(ctx, "bookings/m3", map[string]interface{}{
		"serviceName": "Half Day", "date": "2026-07-10", "time": "half-day", "ownerId": "owner-3",
	}))
	repo := NewRepository(store)

	morning, err := repo.List(ctx, domain.AppointmentsFilter{Date: &slotDate, Time: ptr.Ptr("09:00")})
	require.NoError(t, err)
	require.Len(t, morning, 1)
	assert.Equal(t, "m1", morning[0].ID)
	assert.Equal(t, "09:00", morning[0].Time)

	halfDay, err := repo.List(ctx, domain.AppointmentsFilter{Date: &slotDate, Time: ptr.Ptr("HalfDay")})
	require.NoError(t, err)
	require.Len(t, halfDay, 2)
	for _, a := range halfDay {
		assert.Equal(t, "HalfDay", a.Time)
	}

	got, err := repo.GetByID(ctx, "m2")
	require.NoError(t, err)
	assert.Equal(t, "HalfDay", got.Time)
}
