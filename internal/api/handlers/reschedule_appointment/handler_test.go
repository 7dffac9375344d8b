package reschedule_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	args := m.Called(ctx, req)
	var resp *rescheduleAppointment.Response
	if args.Get(0) != nil {
		resp = args.Get(0).(*rescheduleAppointment.Response)
	}
	return resp, args.Error(1)
}

func (m *mockUseCase) DetectConflicts(ctx context.Context, candidateID string, date time.Time, slotTime string) ([]string, error) {
	args := m.Called(ctx, candidateID, date, slotTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var june2 = time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

func rescheduleRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/appointments/a1/reschedule", strings.NewReader(body))
	return mux.SetURLVars(r, map[string]string{"appointmentId": "a1"})
}

func TestHandler_Saved(t *testing.T) {
	uc := &mockUseCase{}
	session := domain.NewRescheduleSession("a1")
	session.State = domain.RescheduleSaved
	uc.On("Execute", mock.Anything, &rescheduleAppointment.Request{AppointmentID: "a1", Date: june2, Time: "14:00"}).
		Return(&rescheduleAppointment.Response{
			Session: session,
			Appointment: &domain.Appointment{ID: "a1", AppointmentRequest: domain.AppointmentRequest{
				ServiceName: "Bath", Date: june2, Time: "14:00", Status: domain.StatusScheduled,
			}},
		}, nil)
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, rescheduleRequest(`{"date":"2026-06-02","time":"14:00"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp RescheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "saved", resp.State)
	assert.Equal(t, "2026-06-02", resp.Appointment.Date)
	assert.Equal(t, "14:00", resp.Appointment.Time)
}

func TestHandler_ConflictReturnsIDs(t *testing.T) {
	uc := &mockUseCase{}
	session := domain.NewRescheduleSession("a1")
	session.State = domain.RescheduleConflict
	session.ConflictsWith = []string{"a2", "old-1"}
	uc.On("Execute", mock.Anything, mock.Anything).Return(
		&rescheduleAppointment.Response{Session: session},
		fmt.Errorf("%w: a2, old-1", rescheduleAppointment.ErrScheduleConflict),
	)
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, rescheduleRequest(`{"date":"2026-06-02","time":"11:00"}`))

	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Code    string `json:"code"`
		Details struct {
			ConflictsWith []string `json:"conflictsWith"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.KindScheduleConflict), resp.Code)
	assert.Equal(t, []string{"a2", "old-1"}, resp.Details.ConflictsWith)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"bad date", `{"date":"02.06.2026","time":"11:00"}`, nil, http.StatusBadRequest},
		{"missing time", `{"date":"2026-06-02"}`, nil, http.StatusBadRequest},
		{"bad time", `{"date":"2026-06-02","time":"25:99"}`, rescheduleAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"not found", `{"date":"2026-06-02","time":"11:00"}`, rescheduleAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"completed", `{"date":"2026-06-02","time":"11:00"}`, rescheduleAppointment.ErrNotModifiable, http.StatusConflict},
		{"store down", `{"date":"2026-06-02","time":"11:00"}`, rescheduleAppointment.ErrConflictCheckFailed, http.StatusServiceUnavailable},
		{"internal", `{"date":"2026-06-02","time":"11:00"}`, rescheduleAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewHandler(uc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, rescheduleRequest(tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_Conflicts(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("DetectConflicts", mock.Anything, "a1", june2, "11:00").Return([]string{"a2"}, nil)
	h := NewHandler(uc, logger.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments/a1/conflicts?date=2026-06-02&time=11:00", nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "a1"})
	w := httptest.NewRecorder()

	h.Conflicts(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ConflictsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.HasConflicts)
	assert.Equal(t, []string{"a2"}, resp.ConflictsWith)
}

func TestHandler_ConflictsCheckFailed(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("DetectConflicts", mock.Anything, "a1", june2, "11:00").
		Return(nil, rescheduleAppointment.ErrConflictCheckFailed)
	h := NewHandler(uc, logger.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments/a1/conflicts?date=2026-06-02&time=11:00", nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "a1"})
	w := httptest.NewRecorder()

	h.Conflicts(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.KindAvailabilityCheckFailed), resp.Code)
}

func TestHandler_ConflictsInvalidTime(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("DetectConflicts", mock.Anything, "a1", june2, "noon").
		Return(nil, fmt.Errorf("%w: time", rescheduleAppointment.ErrInvalidInput))
	h := NewHandler(uc, logger.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments/a1/conflicts?date=2026-06-02&time=noon", nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "a1"})
	w := httptest.NewRecorder()

	h.Conflicts(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
