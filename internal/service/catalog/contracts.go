package catalog

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error)
	ListEntries(ctx context.Context, filter domain.CatalogFilter) ([]*domain.ServiceCatalogEntry, error)
	UpsertEntry(ctx context.Context, entry *domain.ServiceCatalogEntry) error
	ListAddons(ctx context.Context) ([]*domain.Addon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
