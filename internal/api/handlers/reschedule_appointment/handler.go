package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req RescheduleRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/reschedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, rescheduleAppointment.ErrInvalidInput) {
			h.logger.Warn("PATCH /admin/appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		// При конфликте отдаем ID мешающих записей
		var details interface{}
		if errors.Is(err, rescheduleAppointment.ErrScheduleConflict) && result != nil {
			details = map[string]interface{}{"conflictsWith": result.Session.ConflictsWith}
		}
		if handlers.RespondKindErrorWithDetails(w, err, details) {
			h.logger.Warn("PATCH /admin/appointments/{id}/reschedule - Rejected: appointment_id=%s, error=%v",
				appointmentID, err)
			return
		}

		h.logger.Error("PATCH /admin/appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v",
			appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%s, date=%s, time=%s",
		appointmentID, req.Date, result.Appointment.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// Conflicts GET /api/v1/admin/appointments/{appointmentId}/conflicts
// Query params: date (YYYY-MM-DD), time (HH:MM) - обязательные
func (h *Handler) Conflicts(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil || timeStr == "" {
		h.logger.Warn("GET /admin/appointments/{id}/conflicts - Invalid parameters: date=%s, time=%s", dateStr, timeStr)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	conflicts, err := h.useCase.DetectConflicts(r.Context(), appointmentID, date, timeStr)
	if err != nil {
		if errors.Is(err, rescheduleAppointment.ErrInvalidInput) {
			h.logger.Warn("GET /admin/appointments/{id}/conflicts - Invalid time: %s", timeStr)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		if handlers.RespondKindError(w, err) {
			h.logger.Warn("GET /admin/appointments/{id}/conflicts - Check failed: %v", err)
			return
		}
		h.logger.Error("GET /admin/appointments/{id}/conflicts - Failed to detect conflicts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ConflictsResponse{
		Date:          dateStr,
		Time:          timeStr,
		HasConflicts:  len(conflicts) > 0,
		ConflictsWith: conflicts,
	})
}
