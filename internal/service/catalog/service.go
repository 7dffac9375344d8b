package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/pricing"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListEntries получает услуги каталога с фильтром по категории и виду животного.
// Публичный метод - доступен всем.
func (s *Service) ListEntries(ctx context.Context, req *models.ListEntriesRequest) (*models.EntryListResponse, error) {
	s.logger.Info("ListEntries: fetching catalog, category=%v, species=%v", req.Category, req.Species)

	var filter domain.CatalogFilter
	if req.Category != nil {
		category, ok := domain.ParseCategory(*req.Category)
		if !ok {
			s.logger.Warn("ListEntries: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
		}
		filter.Category = &category
	}
	if req.Species != nil {
		species, ok := domain.ParseSpecies(*req.Species)
		if !ok {
			s.logger.Warn("ListEntries: invalid species=%s", *req.Species)
			return nil, fmt.Errorf("%w: invalid species", ErrInvalidInput)
		}
		filter.Species = &species
	}

	entries, err := s.catalogRepo.ListEntries(ctx, filter)
	if err != nil {
		s.logger.Error("ListEntries: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEntries - repository error: %v", ErrInternal, err)
	}

	resp := &models.EntryListResponse{Entries: make([]models.EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, *models.FromDomainEntry(entry, s.displayPrice(entry)))
	}

	s.logger.Info("ListEntries: successfully fetched %d entries", len(resp.Entries))
	return resp, nil
}

// GetEntry получает услугу каталога по ключу
func (s *Service) GetEntry(ctx context.Context, category, species, id string) (*models.EntryResponse, error) {
	s.logger.Info("GetEntry: fetching entry %s/%s/%s", category, species, id)

	cat, sp, err := parseKey(category, species, id)
	if err != nil {
		s.logger.Warn("GetEntry: invalid key %s/%s/%s: %v", category, species, id, err)
		return nil, err
	}

	entry, err := s.catalogRepo.GetEntry(ctx, cat, sp, id)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			s.logger.Warn("GetEntry: entry %s/%s/%s not found", cat, sp, id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetEntry: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEntry - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(entry, s.displayPrice(entry)), nil
}

// UpsertEntry создает или изменяет услугу каталога (для администратора).
// Запись всегда сохраняется по каноническому пути категории и вида.
func (s *Service) UpsertEntry(ctx context.Context, category, species, id string, req *models.UpsertEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("UpsertEntry: saving entry %s/%s/%s", category, species, id)

	// 1. Проверяем ключ
	cat, sp, err := parseKey(category, species, id)
	if err != nil {
		s.logger.Warn("UpsertEntry: invalid key %s/%s/%s: %v", category, species, id, err)
		return nil, err
	}

	// 2. Проверяем поля, специфичные для категории
	if err := validateRequest(cat, sp, req); err != nil {
		s.logger.Warn("UpsertEntry: validation failed for %s/%s/%s: %v", cat, sp, id, err)
		return nil, err
	}

	entry := req.ToDomainEntry(cat, sp, id)
	if cat == domain.CategoryGrooming && sp == domain.SpeciesDog {
		entry.BackfillPrice()
	}

	// 3. Услуга должна давать положительную цену
	if _, err := pricing.ResolvePrice(entry, sp, nil); err != nil {
		s.logger.Warn("UpsertEntry: entry %s/%s/%s has no usable price: %v", cat, sp, id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}

	// 4. Сохраняем
	if err := s.catalogRepo.UpsertEntry(ctx, entry); err != nil {
		s.logger.Error("UpsertEntry: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertEntry - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertEntry: successfully saved entry %s/%s/%s", cat, sp, id)
	return models.FromDomainEntry(entry, s.displayPrice(entry)), nil
}

// ListAddons получает список доп. услуг
func (s *Service) ListAddons(ctx context.Context) (*models.AddonListResponse, error) {
	s.logger.Info("ListAddons: fetching addons")

	addons, err := s.catalogRepo.ListAddons(ctx)
	if err != nil {
		s.logger.Error("ListAddons: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAddons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAddons: successfully fetched %d addons", len(addons))
	return models.FromDomainAddonList(addons), nil
}

// displayPrice цена для карточки услуги; услуги без корректной цены показываются без неё
func (s *Service) displayPrice(entry *domain.ServiceCatalogEntry) *models.PriceSummary {
	quote, err := pricing.ResolvePrice(entry, entry.Species, nil)
	if err != nil {
		s.logger.Warn("catalog entry %s/%s/%s has invalid price: %v", entry.Category, entry.Species, entry.ID, err)
		return nil
	}
	return &models.PriceSummary{
		Amount:       quote.Amount,
		UnitLabel:    quote.UnitLabel,
		StartingFrom: quote.StartingFrom,
	}
}

func parseKey(category, species, id string) (domain.Category, domain.Species, error) {
	cat, ok := domain.ParseCategory(category)
	if !ok {
		return "", "", fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	sp, ok := domain.ParseSpecies(species)
	if !ok {
		return "", "", fmt.Errorf("%w: invalid species", ErrInvalidInput)
	}
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, "/.#$[]") {
		return "", "", fmt.Errorf("%w: invalid id", ErrInvalidInput)
	}
	return cat, sp, nil
}

// validateRequest проверяет правила категорий:
// Grooming - тарифы по размеру только для собак;
// DayCare - обязательный тип дня и фиксированная цена;
// Boarding - обязательный пакет и цена за ночь.
func validateRequest(category domain.Category, species domain.Species, req *models.UpsertEntryRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	for k := range req.Pricing {
		if _, ok := domain.ParseSizeTier(k); !ok {
			return fmt.Errorf("%w: unknown size tier %q", ErrInvalidInput, k)
		}
	}

	switch category {
	case domain.CategoryGrooming:
		if len(req.Pricing) > 0 && species != domain.SpeciesDog {
			return fmt.Errorf("%w: size tiers are supported for dogs only", ErrInvalidInput)
		}
		if req.DaycareType != nil || req.BoardingPackage != nil || req.PricePerNight != nil {
			return fmt.Errorf("%w: daycare and boarding fields are not allowed for grooming", ErrInvalidInput)
		}

	case domain.CategoryDayCare:
		if req.DaycareType == nil {
			return fmt.Errorf("%w: daycareType is required", ErrInvalidInput)
		}
		if _, ok := domain.ParseDaycareType(*req.DaycareType); !ok {
			return fmt.Errorf("%w: invalid daycareType", ErrInvalidInput)
		}
		if len(req.Pricing) > 0 || req.DurationMinutes != nil || req.BoardingPackage != nil || req.PricePerNight != nil {
			return fmt.Errorf("%w: only a flat price is allowed for daycare", ErrInvalidInput)
		}

	case domain.CategoryBoarding:
		if req.BoardingPackage == nil {
			return fmt.Errorf("%w: boardingPackage must be one of 3-Days, 5-Days, 7-Days+", ErrInvalidInput)
		}
		if _, ok := domain.ParseBoardingPackage(*req.BoardingPackage); !ok {
			return fmt.Errorf("%w: boardingPackage must be one of 3-Days, 5-Days, 7-Days+", ErrInvalidInput)
		}
		if req.PricePerNight == nil {
			return fmt.Errorf("%w: pricePerNight is required", ErrInvalidInput)
		}
		if len(req.Pricing) > 0 || req.DurationMinutes != nil || req.DaycareType != nil || req.Price != nil {
			return fmt.Errorf("%w: boarding is priced per night only", ErrInvalidInput)
		}
	}

	return nil
}
