package get_catalog_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
)

const (
	msgInvalidKey = "некорректная категория, вид животного или ID услуги"
	msgNotFound   = "услуга не найдена"
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

// Handle GET /api/v1/catalog/{category}/{species}/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, species, id := vars["category"], vars["species"], vars["id"]

	entry, err := h.service.GetEntry(r.Context(), category, species, id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /catalog/{category}/{species}/{id} - Invalid key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKey)

		case errors.Is(err, catalog.ErrEntryNotFound):
			h.logger.Warn("GET /catalog/{category}/{species}/{id} - Entry not found: %s/%s/%s", category, species, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /catalog/{category}/{species}/{id} - Failed to get entry: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /catalog/{category}/{species}/{id} - Entry retrieved successfully: %s/%s/%s", category, species, id)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
