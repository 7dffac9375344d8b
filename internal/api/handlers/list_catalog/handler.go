package list_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

const (
	msgInvalidParams = "некорректная категория или вид животного"
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

// Handle GET /api/v1/catalog
// Query params: category, species (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq := &models.ListEntriesRequest{}
	if category := r.URL.Query().Get("category"); category != "" {
		serviceReq.Category = &category
	}
	if species := r.URL.Query().Get("species"); species != "" {
		serviceReq.Species = &species
	}

	result, err := h.service.ListEntries(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /catalog - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /catalog - Failed to list catalog: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /catalog - Catalog retrieved successfully: count=%d", len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
