package upsert_catalog_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/catalog/{category}/{species}/{id} (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, species, id := vars["category"], vars["species"], vars["id"]

	var req models.UpsertEntryRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /catalog/{category}/{species}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.UpsertEntry(r.Context(), category, species, id, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("PUT /catalog/{category}/{species}/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		// InvalidPrice -> 422
		if handlers.RespondKindError(w, err) {
			h.logger.Warn("PUT /catalog/{category}/{species}/{id} - Rejected: %s/%s/%s, error=%v", category, species, id, err)
			return
		}
		h.logger.Error("PUT /catalog/{category}/{species}/{id} - Failed to save entry: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /catalog/{category}/{species}/{id} - Entry saved successfully: %s/%s/%s", category, species, id)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
