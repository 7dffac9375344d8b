package pricing

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// ResolvePrice считает базовую стоимость услуги для вида животного и размера
func ResolvePrice(entry *domain.ServiceCatalogEntry, species domain.Species, size *domain.SizeTier) (Quote, error) {
	return ResolvePriceWithOptions(entry, species, size, Options{})
}

// ResolvePriceWithOptions считает базовую стоимость с учётом фактической длительности пансиона.
//
// Boarding: pricePerNight × ночи пакета.
// Собаки с тарифами по размеру: тариф размера, без размера - минимальный тариф (цена "от").
// Остальное: фиксированная цена.
func ResolvePriceWithOptions(entry *domain.ServiceCatalogEntry, species domain.Species, size *domain.SizeTier, opts Options) (Quote, error) {
	quote := Quote{UnitLabel: unitLabel(entry.Category)}

	switch {
	case entry.Category == domain.CategoryBoarding:
		label := ""
		if entry.BoardingPackage != nil {
			label = string(*entry.BoardingPackage)
		}
		pkg, _ := domain.ParseBoardingPackage(label)
		nights := NightsForPackage(label)
		if opts.Nights != nil && pkg.HasSelectableEndDate() && *opts.Nights > nights {
			nights = *opts.Nights
		}
		perNight := 0.0
		if entry.PricePerNight != nil {
			perNight = *entry.PricePerNight
		}
		quote.Amount = perNight * float64(nights)
		quote.Nights = &nights

	case species == domain.SpeciesDog && entry.HasTieredPricing():
		if size != nil {
			if price, ok := entry.TierPrice(*size); ok {
				quote.Amount = price
				break
			}
		}
		lowest, _ := entry.MinTierPrice()
		quote.Amount = lowest
		quote.StartingFrom = true

	default:
		if entry.Price != nil {
			quote.Amount = *entry.Price
		}
	}

	if math.IsNaN(quote.Amount) || math.IsInf(quote.Amount, 0) || quote.Amount <= 0 {
		return Quote{}, fmt.Errorf("%w: %s %q resolved to %v", ErrInvalidPrice, entry.Category, entry.ID, quote.Amount)
	}

	quote.Amount = Round2(quote.Amount)
	return quote, nil
}

// NightsForPackage количество ночей пакета пансиона (промежуток дней от даты заезда).
// Неизвестные значения считаются пакетом "3-Days".
func NightsForPackage(label string) int {
	pkg, _ := domain.ParseBoardingPackage(label)
	switch pkg {
	case domain.Boarding5Days:
		return domain.Boarding5DaysSpan
	case domain.Boarding7DaysPlus:
		return domain.Boarding7DaysMinSpan
	default:
		return domain.Boarding3DaysSpan
	}
}

// SumAddons сумма цен доп. услуг
func SumAddons(addons []*domain.Addon) (float64, error) {
	sum := 0.0
	for _, addon := range addons {
		if math.IsNaN(addon.Price) || math.IsInf(addon.Price, 0) || addon.Price <= 0 {
			return 0, fmt.Errorf("%w: addon %q", ErrInvalidPrice, addon.ID)
		}
		sum += addon.Price
	}
	return Round2(sum), nil
}

// Totals итоговые суммы: total = base + addons, округление до копеек
func Totals(base float64, addons []*domain.Addon) (Amounts, error) {
	addonAmount, err := SumAddons(addons)
	if err != nil {
		return Amounts{}, err
	}
	return Amounts{
		Base:  Round2(base),
		Addon: addonAmount,
		Total: Round2(base + addonAmount),
	}, nil
}

// Round2 округление до 2 знаков
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func unitLabel(category domain.Category) string {
	switch category {
	case domain.CategoryBoarding:
		return domain.UnitTotalForPackage
	case domain.CategoryDayCare:
		return domain.UnitPerDay
	default:
		return domain.UnitFlat
	}
}
