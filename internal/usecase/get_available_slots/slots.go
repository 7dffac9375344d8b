package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// daycareSlots слоты дневного ухода
var daycareSlots = []string{string(domain.DaycareHalfDay), string(domain.DaycareFullDay)}

// generateTimeSlots генерирует слоты дня с начала работы с фиксированным шагом.
// Слот, который заканчивается после закрытия, не попадает в сетку.
// Для сегодняшней даты отбрасываются слоты раньше now + MinNoticeMinutes.
func generateTimeSlots(schedule Schedule, requestDate time.Time, now time.Time) ([]string, error) {
	// Шаг 1: Генерируем ВСЕ слоты от начала работы до конца с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	currentSlot := schedule.Open

	for currentSlot.IsBefore(schedule.Close) {
		slotEnd, err := currentSlot.AddMinutes(schedule.StepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(schedule.Close) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	// Шаг 2: Если дата НЕ сегодня - возвращаем все слоты
	minAllowed := types.TimeString("")
	if isSameDay(requestDate, now) {
		var err error
		minAllowed, err = types.NewTimeString(now).AddMinutes(schedule.MinNoticeMinutes)
		if err != nil {
			// Минимальное время уходит за полночь: на сегодня слотов нет
			return []string{}, nil
		}
	}

	// Шаг 3: Фильтруем слоты по минимальному времени начала
	result := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		if !minAllowed.IsZero() && slot.IsBefore(minAllowed) {
			continue
		}
		result = append(result, slot.String())
	}

	return result, nil
}

// calculateAvailableSpots считает свободные места для каждого слота.
// Запись занимает слот только при точном совпадении услуги, даты и времени.
func calculateAvailableSpots(
	slotTimes []string,
	serviceName string,
	date time.Time,
	appointments []*domain.Appointment,
) []Slot {
	result := make([]Slot, len(slotTimes))

	for i, slotTime := range slotTimes {
		occupancy := domain.SlotOccupancy{
			ServiceName: serviceName,
			Date:        date,
			Time:        slotTime,
			Capacity:    domain.MaxConcurrentBookings,
		}
		for _, a := range appointments {
			if a.OccupiesSlot(serviceName, date, slotTime) {
				occupancy.Booked++
			}
		}

		result[i] = Slot{
			Time:           slotTime,
			Booked:         occupancy.Booked,
			AvailableSpots: occupancy.Remaining(),
			TotalSpots:     occupancy.Capacity,
		}
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
