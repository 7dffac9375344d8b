package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const keyPrefix = "catalog:entry:"

// Cache read-through кэш услуг каталога в Redis.
// Ошибки Redis не прерывают запрос: данные читаются из репозитория.
type Cache struct {
	next   Repository
	client Client
	ttl    time.Duration
	logger Logger
}

// NewCache оборачивает репозиторий каталога кэшем
func NewCache(next Repository, client Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedEntry struct {
	ID              string             `json:"id"`
	Category        string             `json:"category"`
	Species         string             `json:"species"`
	Name            string             `json:"name"`
	Price           *float64           `json:"price,omitempty"`
	Pricing         map[string]float64 `json:"pricing,omitempty"`
	DurationMinutes *int               `json:"durationMinutes,omitempty"`
	DaycareType     *string            `json:"daycareType,omitempty"`
	BoardingPackage *string            `json:"boardingPackage,omitempty"`
	PricePerNight   *float64           `json:"pricePerNight,omitempty"`
}

// GetEntry получает услугу из кэша, при промахе - из репозитория
func (c *Cache) GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error) {
	key := entryKey(category, species, id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return fromCached(cached), nil
		}
		c.logger.Warn("catalog cache: corrupt entry %s, reloading", key)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("catalog cache: get %s failed: %v", key, err)
	}

	entry, err := c.next.GetEntry(ctx, category, species, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(toCached(entry))
	if err != nil {
		c.logger.Error("catalog cache: marshal %s: %v", key, err)
		return entry, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache: set %s failed: %v", key, err)
	}

	return entry, nil
}

// UpsertEntry сохраняет услугу и сбрасывает её ключ в кэше
func (c *Cache) UpsertEntry(ctx context.Context, entry *domain.ServiceCatalogEntry) error {
	if err := c.next.UpsertEntry(ctx, entry); err != nil {
		return err
	}
	key := entryKey(entry.Category, entry.Species, entry.ID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("catalog cache: invalidate %s failed: %v", key, err)
	}
	return nil
}

// ListEntries не кэшируется
func (c *Cache) ListEntries(ctx context.Context, filter domain.CatalogFilter) ([]*domain.ServiceCatalogEntry, error) {
	return c.next.ListEntries(ctx, filter)
}

func (c *Cache) GetAddons(ctx context.Context, ids []string) ([]*domain.Addon, error) {
	return c.next.GetAddons(ctx, ids)
}

func (c *Cache) ListAddons(ctx context.Context) ([]*domain.Addon, error) {
	return c.next.ListAddons(ctx)
}

func entryKey(category domain.Category, species domain.Species, id string) string {
	return fmt.Sprintf("%s%s:%s:%s", keyPrefix, category, species, id)
}

func toCached(e *domain.ServiceCatalogEntry) cachedEntry {
	c := cachedEntry{
		ID:              e.ID,
		Category:        string(e.Category),
		Species:         string(e.Species),
		Name:            e.Name,
		Price:           e.Price,
		DurationMinutes: e.DurationMinutes,
		PricePerNight:   e.PricePerNight,
	}
	if len(e.Pricing) > 0 {
		c.Pricing = make(map[string]float64, len(e.Pricing))
		for size, price := range e.Pricing {
			c.Pricing[string(size)] = price
		}
	}
	if e.DaycareType != nil {
		s := string(*e.DaycareType)
		c.DaycareType = &s
	}
	if e.BoardingPackage != nil {
		s := string(*e.BoardingPackage)
		c.BoardingPackage = &s
	}
	return c
}

func fromCached(c cachedEntry) *domain.ServiceCatalogEntry {
	e := &domain.ServiceCatalogEntry{
		ID:              c.ID,
		Category:        domain.Category(c.Category),
		Species:         domain.Species(c.Species),
		Name:            c.Name,
		Price:           c.Price,
		DurationMinutes: c.DurationMinutes,
		PricePerNight:   c.PricePerNight,
	}
	if len(c.Pricing) > 0 {
		e.Pricing = make(map[domain.SizeTier]float64, len(c.Pricing))
		for size, price := range c.Pricing {
			e.Pricing[domain.SizeTier(size)] = price
		}
	}
	if c.DaycareType != nil {
		dt := domain.DaycareType(*c.DaycareType)
		e.DaycareType = &dt
	}
	if c.BoardingPackage != nil {
		p := domain.BoardingPackage(*c.BoardingPackage)
		e.BoardingPackage = &p
	}
	return e
}
