package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-PetCareService/internal/usecase/get_available_slots"
)

const (
	msgMissingParams = "параметры serviceName, category и date обязательны"
	msgInvalidParams = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgDateInPast    = "нельзя получить слоты на прошедшую дату"
	msgDateTooFar    = "запись на эту дату еще не открыта"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: serviceName, category, date (YYYY-MM-DD) - обязательные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceName := query.Get("serviceName")
	categoryStr := query.Get("category")
	dateStr := query.Get("date")

	if serviceName == "" || categoryStr == "" || dateStr == "" {
		h.logger.Warn("GET /slots - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceName, categoryStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Date in the past: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)
			return

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Date too far: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)
			return
		}

		if handlers.RespondKindError(w, err) {
			h.logger.Warn("GET /slots - Check failed: service=%s, date=%s, error=%v", serviceName, dateStr, err)
			return
		}
		h.logger.Error("GET /slots - Failed to get slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - service=%s, date=%s, slots=%d", serviceName, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
