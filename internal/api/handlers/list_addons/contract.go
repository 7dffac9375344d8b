package list_addons

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

type CatalogService interface {
	ListAddons(ctx context.Context) (*models.AddonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
