package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, id string, req *models.CancelRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func cancelRequest(body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/a1/cancel", nil)
	} else {
		r = httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/a1/cancel", strings.NewReader(body))
	}
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "a1"})
	return r.WithContext(middleware.WithUser(r.Context(), "u1", false))
}

func TestHandler_CancelWithReason(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, "a1", mock.MatchedBy(func(req *models.CancelRequest) bool {
		return req.Actor.UserID == "u1" && req.Reason != nil && *req.Reason == "vet visit"
	})).Return(nil)
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, cancelRequest(`{"cancellationReason":"  vet visit "}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_CancelWithoutBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, "a1", mock.MatchedBy(func(req *models.CancelRequest) bool {
		return req.Reason == nil
	})).Return(nil)
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, cancelRequest(""))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_CancelErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"foreign", appointments.ErrAccessDenied, http.StatusForbidden},
		{"already completed", appointments.ErrNotModifiable, http.StatusConflict},
		{"internal", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, "a1", mock.Anything).Return(tt.err)
			h := NewHandler(svc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, cancelRequest(""))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
