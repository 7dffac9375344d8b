package stay

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const day = 24 * time.Hour

// Range период пансиона, выведенный из пакета
type Range struct {
	// Enabled - false, пока не выбрана дата заезда
	Enabled bool
	// Editable - дату выезда выбирает гость ("7-Days+")
	Editable   bool
	EndDate    *time.Time
	MinEndDate *time.Time
	Nights     *int
}

// DeriveEndDate вычисляет дату выезда и количество ночей для пакета.
// Для "3-Days" и "5-Days" дата фиксирована (+2 и +4 дня), для "7-Days+"
// гость выбирает дату не раньше start+6. Неизвестные пакеты считаются "3-Days".
func DeriveEndDate(pkg domain.BoardingPackage, start, chosenEnd *time.Time) (Range, error) {
	if start == nil || start.IsZero() {
		return Range{}, nil
	}
	startDate := domain.DateOnly(*start)

	if !pkg.HasSelectableEndDate() {
		span := domain.Boarding3DaysSpan
		if pkg == domain.Boarding5Days {
			span = domain.Boarding5DaysSpan
		}
		end := startDate.AddDate(0, 0, span)
		return Range{
			Enabled:    true,
			EndDate:    &end,
			MinEndDate: &end,
			Nights:     &span,
		}, nil
	}

	minEnd := startDate.AddDate(0, 0, domain.Boarding7DaysMinSpan)
	r := Range{
		Enabled:    true,
		Editable:   true,
		MinEndDate: &minEnd,
	}
	if chosenEnd == nil || chosenEnd.IsZero() {
		return r, nil
	}

	end := domain.DateOnly(*chosenEnd)
	if end.Before(minEnd) {
		return r, fmt.Errorf("%w: end %s is before minimum %s", ErrInvalidDateRange,
			end.Format(domain.DateFormat), minEnd.Format(domain.DateFormat))
	}

	nights := ComputeStayDays(startDate, end) - 1
	if nights > domain.MaxBoardingNights {
		return r, fmt.Errorf("%w: stay of %d nights exceeds %d", ErrInvalidDateRange, nights, domain.MaxBoardingNights)
	}

	r.EndDate = &end
	r.Nights = &nights
	return r, nil
}

// ComputeStayDays количество дней пребывания включительно.
// Отрицательный или некорректный промежуток даёт 0.
func ComputeStayDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := domain.DateOnly(end).Sub(domain.DateOnly(start))
	if diff < 0 {
		return 0
	}
	return int(diff/day) + 1
}
