package list_addons

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
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

// Handle GET /api/v1/catalog/addons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAddons(r.Context())
	if err != nil {
		h.logger.Error("GET /catalog/addons - Failed to list addons: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catalog/addons - Addons retrieved successfully: count=%d", len(result.Addons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
