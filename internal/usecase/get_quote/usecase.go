package get_quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/pricing"
	"github.com/m04kA/SMC-PetCareService/internal/service/stay"
)

// UseCase use case расчёта стоимости выбранной услуги
type UseCase struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute считает цену услуги, период пансиона и итог с доп. услугами.
// В отличие от создания записи, отсутствие размера не ошибка: возвращается цена "от".
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: category=%s, species=%s, service=%s, size=%v",
		req.Category, req.Species, req.ServiceID, req.Size)

	// 1. Валидация входных данных
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	if req.Species != domain.SpeciesDog && req.Species != domain.SpeciesCat {
		return nil, fmt.Errorf("%w: invalid species", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	// 2. Получаем услугу
	entry, err := uc.catalogRepo.GetEntry(ctx, req.Category, req.Species, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("GetQuote: service %s/%s/%s not found", req.Category, req.Species, req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetQuote: failed to get service: %v", err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		ServiceName:  entry.Name,
		RequiresSize: entry.RequiresSizeTier(req.Species),
	}

	// 3. Период пансиона
	var opts pricing.Options
	if entry.Category == domain.CategoryBoarding {
		pkg := domain.BoardingPackage("")
		if entry.BoardingPackage != nil {
			pkg = *entry.BoardingPackage
		}
		r, err := stay.DeriveEndDate(pkg, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Warn("GetQuote: invalid boarding range: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
		resp.Stay = &Stay{
			Enabled:    r.Enabled,
			Editable:   r.Editable,
			EndDate:    r.EndDate,
			MinEndDate: r.MinEndDate,
			Nights:     r.Nights,
		}
		opts.Nights = r.Nights
	}

	// 4. Цена базовой услуги
	quote, err := pricing.ResolvePriceWithOptions(entry, req.Species, req.Size, opts)
	if err != nil {
		uc.logger.Error("GetQuote: catalog entry %s/%s/%s has invalid price: %v",
			entry.Category, entry.Species, entry.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	resp.Amount = quote.Amount
	resp.UnitLabel = quote.UnitLabel
	resp.StartingFrom = quote.StartingFrom
	// "7-Days+" без даты выезда: цена за минимальный срок
	if resp.Stay != nil && resp.Stay.Editable && resp.Stay.EndDate == nil {
		resp.StartingFrom = true
	}

	// 5. Доп. услуги
	addons, err := uc.catalogRepo.GetAddons(ctx, domain.UniqueIDs(req.AddonIDs))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAddonNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		uc.logger.Error("GetQuote: failed to get addons: %v", err)
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}
	amounts, err := pricing.Totals(quote.Amount, addons)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	resp.AddonAmount = amounts.Addon
	resp.TotalAmount = amounts.Total

	uc.logger.Info("GetQuote: service=%s, amount=%.2f %s, total=%.2f",
		entry.Name, resp.Amount, resp.UnitLabel, resp.TotalAmount)
	return resp, nil
}
