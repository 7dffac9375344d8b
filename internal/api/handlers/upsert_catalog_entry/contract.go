package upsert_catalog_entry

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

type CatalogService interface {
	UpsertEntry(ctx context.Context, category, species, id string, req *models.UpsertEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
