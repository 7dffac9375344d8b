package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-PetCareService/internal/usecase/check_availability"
)

const (
	msgMissingParams = "параметры serviceName, date и time обязательны"
	msgInvalidParams = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: serviceName, date (YYYY-MM-DD), time (HH:MM) - обязательные; category - опционально
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceName := query.Get("serviceName")
	dateStr := query.Get("date")
	timeStr := query.Get("time")

	if serviceName == "" || dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /availability - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceName, query.Get("category"), dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, checkAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		if handlers.RespondKindError(w, err) {
			h.logger.Warn("GET /availability - Check failed: service=%s, date=%s, time=%s, error=%v",
				serviceName, dateStr, timeStr, err)
			return
		}
		h.logger.Error("GET /availability - Failed to check availability: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - service=%s, date=%s, time=%s, available=%t, count=%d",
		serviceName, dateStr, timeStr, result.Available, result.Slot.Booked)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
