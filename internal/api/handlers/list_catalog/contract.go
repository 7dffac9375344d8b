package list_catalog

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

type CatalogService interface {
	ListEntries(ctx context.Context, req *models.ListEntriesRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
