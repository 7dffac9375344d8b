package catalog

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Repository источник данных каталога
type Repository interface {
	GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error)
	ListEntries(ctx context.Context, filter domain.CatalogFilter) ([]*domain.ServiceCatalogEntry, error)
	UpsertEntry(ctx context.Context, entry *domain.ServiceCatalogEntry) error
	GetAddons(ctx context.Context, ids []string) ([]*domain.Addon, error)
	ListAddons(ctx context.Context) ([]*domain.Addon, error)
}

// Client подмножество команд Redis (*redis.Client удовлетворяет)
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
