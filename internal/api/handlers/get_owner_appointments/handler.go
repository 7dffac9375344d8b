package get_owner_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{ownerId}/appointments
// Query params: status, includeTerminal (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{ownerId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetOwnerAppointmentsRequest{
		Actor:   models.Actor{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())},
		OwnerID: ownerID,
	}

	// Получаем status из query параметров (опционально)
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}
	if includeStr := r.URL.Query().Get("includeTerminal"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /users/{ownerId}/appointments - Invalid includeTerminal: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.IncludeTerminal = include
	}

	result, err := h.service.GetOwnerAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /users/{ownerId}/appointments - Access denied: owner_id=%s, user_id=%s", ownerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{ownerId}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{ownerId}/appointments - Failed to get appointments: owner_id=%s, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{ownerId}/appointments - Appointments retrieved successfully: owner_id=%s, count=%d",
		ownerID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
