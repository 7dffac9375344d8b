package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
)

const (
	servicesPath = "services"
	addonsPath   = "addons"
)

// Repository каталог услуг и доп. услуг в документном хранилище.
// Записи хранятся под services/{category}/{species}/{id}; варианты имён полей
// (price/Price/amount, "day care", "Dog") нормализуются здесь.
type Repository struct {
	store  rtdb.Store
	logger Logger
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(store rtdb.Store, logger Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// GetEntry получает услугу по категории, виду животного и ID
func (r *Repository) GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error) {
	for _, categoryKey := range keyVariants(string(category)) {
		for _, speciesKey := range keyVariants(string(species)) {
			raw, err := r.store.Get(ctx, rtdb.Join(servicesPath, categoryKey, speciesKey, id))
			if err != nil {
				return nil, fmt.Errorf("%w: GetEntry: %v", ErrStore, err)
			}
			if raw == nil {
				continue
			}

			fields, err := rtdb.DecodeFields(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: GetEntry %s: %v", ErrDecode, id, err)
			}
			return r.decodeEntry(id, category, species, fields), nil
		}
	}
	return nil, ErrEntryNotFound
}

// ListEntries получает услуги каталога с фильтрацией по категории и виду животного
func (r *Repository) ListEntries(ctx context.Context, filter domain.CatalogFilter) ([]*domain.ServiceCatalogEntry, error) {
	raw, err := r.store.Get(ctx, servicesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEntries: %v", ErrStore, err)
	}

	categories, err := rtdb.Children(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEntries: %v", ErrDecode, err)
	}

	entries := make([]*domain.ServiceCatalogEntry, 0)
	for _, categoryNode := range categories {
		category, ok := domain.ParseCategory(categoryNode.Key)
		if !ok || (filter.Category != nil && *filter.Category != category) {
			continue
		}

		speciesNodes, err := rtdb.Children(categoryNode.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEntries %s: %v", ErrDecode, categoryNode.Key, err)
		}
		for _, speciesNode := range speciesNodes {
			species, ok := domain.ParseSpecies(speciesNode.Key)
			if !ok || (filter.Species != nil && *filter.Species != species) {
				continue
			}

			items, err := rtdb.Children(speciesNode.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: ListEntries %s/%s: %v", ErrDecode, categoryNode.Key, speciesNode.Key, err)
			}
			for _, item := range items {
				fields, err := rtdb.DecodeFields(item.Value)
				if err != nil {
					// Не объект (мусор в каталоге) - пропускаем
					continue
				}
				entries = append(entries, r.decodeEntry(item.Key, category, species, fields))
			}
		}
	}

	return entries, nil
}

// UpsertEntry сохраняет услугу в каноническом виде
func (r *Repository) UpsertEntry(ctx context.Context, entry *domain.ServiceCatalogEntry) error {
	path := rtdb.Join(servicesPath, string(entry.Category), string(entry.Species), entry.ID)
	if err := r.store.Set(ctx, path, encodeEntry(entry)); err != nil {
		return fmt.Errorf("%w: UpsertEntry: %v", ErrStore, err)
	}
	return nil
}

// GetAddons получает доп. услуги по списку ID (порядок сохраняется)
func (r *Repository) GetAddons(ctx context.Context, ids []string) ([]*domain.Addon, error) {
	addons := make([]*domain.Addon, 0, len(ids))
	for _, id := range ids {
		raw, err := r.store.Get(ctx, rtdb.Join(addonsPath, id))
		if err != nil {
			return nil, fmt.Errorf("%w: GetAddons: %v", ErrStore, err)
		}
		if raw == nil {
			return nil, fmt.Errorf("%w: %s", ErrAddonNotFound, id)
		}
		fields, err := rtdb.DecodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAddons %s: %v", ErrDecode, id, err)
		}
		addons = append(addons, decodeAddon(id, fields))
	}
	return addons, nil
}

// ListAddons получает все доп. услуги
func (r *Repository) ListAddons(ctx context.Context) ([]*domain.Addon, error) {
	raw, err := r.store.Get(ctx, addonsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAddons: %v", ErrStore, err)
	}

	items, err := rtdb.Children(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAddons: %v", ErrDecode, err)
	}

	addons := make([]*domain.Addon, 0, len(items))
	for _, item := range items {
		fields, err := rtdb.DecodeFields(item.Value)
		if err != nil {
			continue
		}
		addons = append(addons, decodeAddon(item.Key, fields))
	}
	return addons, nil
}

// decodeEntry собирает услугу из полей документа.
// Метка пакета передержки приводится к 3-Days/5-Days/7-Days+; неизвестная сохраняется как есть.
func (r *Repository) decodeEntry(id string, category domain.Category, species domain.Species, f rtdb.Fields) *domain.ServiceCatalogEntry {
	entry := &domain.ServiceCatalogEntry{
		ID:       id,
		Category: category,
		Species:  species,
		Name:     f.String("name", "title"),
	}
	if entry.Name == "" {
		entry.Name = id
	}

	if price, ok := f.Number("price", "amount"); ok {
		entry.Price = &price
	}

	if tiers := f.Object("pricing", "prices"); tiers != nil {
		entry.Pricing = make(map[domain.SizeTier]float64)
		for key, value := range tiers {
			size, ok := domain.ParseSizeTier(key)
			if !ok {
				continue
			}
			if n, ok := rtdb.ToNumber(value); ok {
				entry.Pricing[size] = n
			}
		}
		if len(entry.Pricing) == 0 {
			entry.Pricing = nil
		}
	}

	if duration, ok := f.Number("duration", "durationMinutes"); ok && duration > 0 {
		d := int(duration)
		entry.DurationMinutes = &d
	}

	if dt, ok := domain.ParseDaycareType(f.String("daycareType", "type")); ok && category == domain.CategoryDayCare {
		entry.DaycareType = &dt
	}

	if category == domain.CategoryBoarding {
		if label := f.String("boardingPackage", "package"); label != "" {
			p, ok := domain.ParseBoardingPackage(label)
			if !ok {
				r.logger.Warn("Catalog: unknown boarding package %q in %s/%s/%s, default stay length applies",
					label, category, species, id)
				p = domain.BoardingPackage(label)
			}
			entry.BoardingPackage = &p
		}
		if perNight, ok := f.Number("pricePerNight"); ok {
			entry.PricePerNight = &perNight
		}
	}

	// Стрижка собак: цена "от" - минимальный тариф
	if category == domain.CategoryGrooming && species == domain.SpeciesDog {
		entry.BackfillPrice()
	}

	return entry
}

func encodeEntry(entry *domain.ServiceCatalogEntry) map[string]interface{} {
	doc := map[string]interface{}{
		"name": entry.Name,
	}
	if entry.Price != nil {
		doc["price"] = *entry.Price
	}
	if len(entry.Pricing) > 0 {
		tiers := make(map[string]float64, len(entry.Pricing))
		for size, price := range entry.Pricing {
			tiers[string(size)] = price
		}
		doc["pricing"] = tiers
	}
	if entry.DurationMinutes != nil {
		doc["duration"] = *entry.DurationMinutes
	}
	if entry.DaycareType != nil {
		doc["daycareType"] = string(*entry.DaycareType)
	}
	if entry.BoardingPackage != nil {
		doc["boardingPackage"] = string(*entry.BoardingPackage)
	}
	if entry.PricePerNight != nil {
		doc["pricePerNight"] = *entry.PricePerNight
	}
	return doc
}

func decodeAddon(id string, f rtdb.Fields) *domain.Addon {
	addon := &domain.Addon{
		ID:   id,
		Name: f.String("name", "title"),
	}
	if price, ok := f.Number("price", "amount"); ok {
		addon.Price = price
	}
	return addon
}

// keyVariants варианты ключа узла: канонический, в нижнем регистре, с заглавной буквы
func keyVariants(key string) []string {
	variants := []string{key}
	seen := map[string]struct{}{key: {}}
	add := func(v string) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			variants = append(variants, v)
		}
	}
	lower := strings.ToLower(key)
	add(lower)
	if lower != "" {
		add(strings.ToUpper(lower[:1]) + lower[1:])
	}
	return variants
}
