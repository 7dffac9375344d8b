package booking_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	bookingWizard "github.com/m04kA/SMC-PetCareService/internal/usecase/booking_wizard"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия записи не найдена или истекла"
	msgVersionConflict    = "сессия записи изменена другим запросом, обновите её"
)

// Handler мастер записи: сессия, события, отправка
type Handler struct {
	useCase BookingWizardUseCase
	logger  Logger
}

func NewHandler(useCase BookingWizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/booking-sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.useCase.Start(userID)
	if err != nil {
		h.logger.Error("POST /booking-sessions - Failed to start session: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-sessions - Session started: session_id=%s, user_id=%s", resp.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromSessionResponse(resp))
}

// Get GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	resp, err := h.useCase.Get(sessionID, userID)
	if err != nil {
		h.respondError(w, "GET /booking-sessions/{id}", sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSessionResponse(resp))
}

// ApplyEvents POST /api/v1/booking-sessions/{sessionId}/events
func (h *Handler) ApplyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req ApplyEventsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.ApplyEvents(r.Context(), req.ToUseCaseRequest(sessionID, userID))
	if err != nil {
		h.respondError(w, "POST /booking-sessions/{id}/events", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/events - Events applied: session_id=%s, step=%s",
		sessionID, resp.Step)
	handlers.RespondJSON(w, http.StatusOK, FromSessionResponse(resp))
}

// Submit POST /api/v1/booking-sessions/{sessionId}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	resp, err := h.useCase.Submit(r.Context(), &bookingWizard.SubmitRequest{SessionID: sessionID, OwnerID: userID})
	if err != nil {
		h.respondError(w, "POST /booking-sessions/{id}/submit", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/submit - Appointment created: session_id=%s, appointment_id=%s",
		sessionID, resp.Appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, &SubmitResponse{
		AppointmentResponse: models.FromDomainAppointment(resp.Appointment),
		UnitLabel:           resp.UnitLabel,
	})
}

// Discard DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.useCase.Discard(sessionID, userID); err != nil {
		h.respondError(w, "DELETE /booking-sessions/{id}", sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route, sessionID string, err error) {
	switch {
	case errors.Is(err, bookingWizard.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", route, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return

	case errors.Is(err, bookingWizard.ErrVersionConflict):
		h.logger.Warn("%s - Version conflict: session_id=%s", route, sessionID)
		handlers.RespondConflict(w, msgVersionConflict)
		return
	}

	if handlers.RespondKindError(w, err) {
		h.logger.Warn("%s - Rejected: session_id=%s, error=%v", route, sessionID, err)
		return
	}

	h.logger.Error("%s - Failed: session_id=%s, error=%v", route, sessionID, err)
	handlers.RespondInternalError(w)
}
