package booking_wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/session"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*create_appointment.Response), args.Error(1)
}

type harness struct {
	uc       *UseCase
	sessions *session.Store
	creator  *mockCreator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	store := rtdb.NewMemory()

	require.NoError(t, store.Set(ctx, "pets/owner-1/rex", map[string]interface{}{"name": "Rex", "species": "dog"}))
	require.NoError(t, store.Set(ctx, "pets/owner-1/tom", map[string]interface{}{"name": "Tom", "species": "cat"}))
	require.NoError(t, store.Set(ctx, "services/Grooming/dog/full-groom", map[string]interface{}{
		"name":    "Full Grooming",
		"pricing": map[string]interface{}{"small": 40, "medium": 55, "large": 70},
	}))
	require.NoError(t, store.Set(ctx, "services/Grooming/cat/full-groom", map[string]interface{}{
		"name": "Full Grooming", "price": 45,
	}))
	require.NoError(t, store.Set(ctx, "services/Boarding/dog/b7", map[string]interface{}{
		"name": "Boarding 7+", "boardingPackage": "7-Days+", "pricePerNight": 30,
	}))

	sessions := session.NewStore(time.Hour)
	creator := &mockCreator{}
	uc := NewUseCase(sessions, petRepo.NewRepository(store), catalogRepo.NewRepository(store, logger.NewNop()), creator, logger.NewNop())

	return &harness{uc: uc, sessions: sessions, creator: creator}
}

func groomingEvents() []Event {
	return []Event{
		{Type: EventSelectPet, Value: "rex"},
		{Type: EventSelectCategory, Value: "grooming"},
		{Type: EventSelectPackage, Value: "full-groom"},
		{Type: EventSelectSize, Value: "medium"},
		{Type: EventSelectDate, Value: "2026-11-02"},
		{Type: EventSelectTime, Value: "10:00"},
		{Type: EventSetAddons, Values: []string{"nails", "nails"}},
	}
}

func TestUseCase_ApplyEventsReachesSubmittable(t *testing.T) {
	h := newHarness(t)
	started, err := h.uc.Start("owner-1")
	require.NoError(t, err)

	resp, err := h.uc.ApplyEvents(context.Background(), &ApplyRequest{
		SessionID: started.ID, OwnerID: "owner-1", Events: groomingEvents(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StepSubmittable, resp.Step)
	assert.True(t, resp.Submittable)
	assert.Equal(t, domain.SpeciesDog, resp.Selection.Species)
	assert.True(t, resp.Selection.Traits.RequiresSize)
	assert.Equal(t, []string{"nails"}, resp.Selection.AddonIDs)
	assert.Equal(t, started.Version+1, resp.Version)
}

func TestUseCase_CatPackageSkipsSize(t *testing.T) {
	h := newHarness(t)
	started, _ := h.uc.Start("owner-1")

	resp, err := h.uc.ApplyEvents(context.Background(), &ApplyRequest{
		SessionID: started.ID, OwnerID: "owner-1", Events: []Event{
			{Type: EventSelectPet, Value: "tom"},
			{Type: EventSelectCategory, Value: "Grooming"},
			{Type: EventSelectPackage, Value: "full-groom"},
			{Type: EventSelectDate, Value: "2026-11-02"},
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Selection.Traits.RequiresSize)
	assert.Equal(t, domain.StepDateSelected, resp.Step)
}

func TestUseCase_RejectedEventLeavesSessionUntouched(t *testing.T) {
	h := newHarness(t)
	started, _ := h.uc.Start("owner-1")

	_, err := h.uc.ApplyEvents(context.Background(), &ApplyRequest{
		SessionID: started.ID, OwnerID: "owner-1", Events: []Event{
			{Type: EventSelectPet, Value: "rex"},
			{Type: EventSelectCategory, Value: "Grooming"},
			{Type: EventSelectPackage, Value: "full-groom"},
			{Type: EventSelectDate, Value: "2026-11-02"},
		},
	})

	require.ErrorIs(t, err, domain.ErrMissingSizeTier)

	current, err := h.uc.Get(started.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepEmpty, current.Step)
	assert.Equal(t, started.Version, current.Version)
}

func TestUseCase_ReselectionClearsDownstream(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	started, _ := h.uc.Start("owner-1")

	_, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1", Events: groomingEvents()})
	require.NoError(t, err)

	resp, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1", Events: []Event{
		{Type: EventSelectSize, Value: "large"},
	}})

	require.NoError(t, err)
	assert.Equal(t, domain.StepSizeSelected, resp.Step)
	assert.Nil(t, resp.Selection.Date)
	assert.Empty(t, resp.Selection.Time)
}

func TestUseCase_BoardingNeedsEndDate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	started, _ := h.uc.Start("owner-1")

	base := []Event{
		{Type: EventSelectPet, Value: "rex"},
		{Type: EventSelectCategory, Value: "boarding"},
		{Type: EventSelectPackage, Value: "b7"},
		{Type: EventSelectDate, Value: "2026-11-02"},
	}

	_, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1",
		Events: append(append([]Event{}, base...), Event{Type: EventSelectTime, Value: "09:00"})})
	require.ErrorIs(t, err, domain.ErrMissingSelection)

	_, err = h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1",
		Events: append(append([]Event{}, base...), Event{Type: EventSelectEndDate, Value: "2026-11-05"})})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)

	resp, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1",
		Events: append(append([]Event{}, base...),
			Event{Type: EventSelectEndDate, Value: "2026-11-10"},
			Event{Type: EventSelectTime, Value: "09:00"},
		)})
	require.NoError(t, err)
	assert.True(t, resp.Submittable)
	assert.True(t, resp.Selection.Traits.RequiresEndDate)
}

func TestUseCase_ApplyEventsErrors(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		events  []Event
		version *int64
		wantErr error
	}{
		{"other owner", "owner-2", nil, nil, ErrSessionNotFound},
		{"stale version", "owner-1", nil, ptr.Ptr(int64(42)), ErrVersionConflict},
		{"unknown pet", "owner-1", []Event{{Type: EventSelectPet, Value: "ghost"}}, nil, ErrPetNotFound},
		{"unknown package", "owner-1", []Event{
			{Type: EventSelectPet, Value: "rex"},
			{Type: EventSelectCategory, Value: "DayCare"},
			{Type: EventSelectPackage, Value: "full-groom"},
		}, nil, ErrServiceNotFound},
		{"bad date", "owner-1", []Event{
			{Type: EventSelectPet, Value: "tom"},
			{Type: EventSelectCategory, Value: "Grooming"},
			{Type: EventSelectPackage, Value: "full-groom"},
			{Type: EventSelectDate, Value: "02.11.2026"},
		}, nil, domain.ErrInvalidSelection},
		{"unknown event", "owner-1", []Event{{Type: "jump"}}, nil, ErrUnknownEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			started, _ := h.uc.Start("owner-1")

			_, err := h.uc.ApplyEvents(context.Background(), &ApplyRequest{
				SessionID: started.ID, OwnerID: tt.owner, ExpectedVersion: tt.version, Events: tt.events,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_SubmitCreatesAndDeletesSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	started, _ := h.uc.Start("owner-1")
	_, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1", Events: groomingEvents()})
	require.NoError(t, err)

	created := &domain.Appointment{ID: "appt-1"}
	h.creator.On("Execute", ctx, mock.MatchedBy(func(req *create_appointment.Request) bool {
		return req.OwnerID == "owner-1" && req.PetID == "rex" && *req.Size == domain.SizeMedium &&
			req.Time == "10:00" && len(req.AddonIDs) == 1
	})).Return(&create_appointment.Response{Appointment: created, UnitLabel: "flat"}, nil)

	resp, err := h.uc.Submit(ctx, &SubmitRequest{SessionID: started.ID, OwnerID: "owner-1"})

	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.Appointment.ID)
	_, err = h.uc.Get(started.ID, "owner-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	h.creator.AssertExpectations(t)
}

func TestUseCase_SubmitFailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	started, _ := h.uc.Start("owner-1")
	applied, err := h.uc.ApplyEvents(ctx, &ApplyRequest{SessionID: started.ID, OwnerID: "owner-1", Events: groomingEvents()})
	require.NoError(t, err)

	h.creator.On("Execute", ctx, mock.Anything).Return(nil, create_appointment.ErrSlotFull)

	_, err = h.uc.Submit(ctx, &SubmitRequest{SessionID: started.ID, OwnerID: "owner-1"})

	require.ErrorIs(t, err, domain.ErrSlotFull)
	current, err := h.uc.Get(started.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, applied.Version, current.Version)
	assert.True(t, current.Submittable)
}

func TestUseCase_SubmitIncompleteSession(t *testing.T) {
	h := newHarness(t)
	started, _ := h.uc.Start("owner-1")

	_, err := h.uc.Submit(context.Background(), &SubmitRequest{SessionID: started.ID, OwnerID: "owner-1"})

	require.ErrorIs(t, err, ErrNotSubmittable)
	h.creator.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUseCase_Discard(t *testing.T) {
	h := newHarness(t)
	started, _ := h.uc.Start("owner-1")

	assert.ErrorIs(t, h.uc.Discard(started.ID, "owner-2"), ErrSessionNotFound)
	require.NoError(t, h.uc.Discard(started.ID, "owner-1"))
	_, err := h.uc.Get(started.ID, "owner-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
