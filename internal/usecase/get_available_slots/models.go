package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// Request модель запроса на получение слотов дня
type Request struct {
	ServiceName string          // название услуги, по которому считаются записи
	Category    domain.Category // Boarding не ограничен вместимостью, DayCare - слоты HalfDay/FullDay
	Date        time.Time       // дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time
	ServiceName string
	Exempt      bool   // true для Boarding: слоты не ограничены
	Slots       []Slot // пусто для выходного дня и для Boarding
}

// Slot модель временного слота
type Slot struct {
	Time           string // "10:00" или HalfDay/FullDay
	Booked         int    // активные записи из обоих источников
	AvailableSpots int
	TotalSpots     int
}

// Schedule рабочее время для сетки слотов
type Schedule struct {
	Open             types.TimeString
	Close            types.TimeString
	StepMinutes      int
	MinNoticeMinutes int
	AdvanceDays      int // 0 - без ограничения
	ClosedWeekdays   []time.Weekday
}

// IsOpenOn возвращает false для выходных дней
func (s Schedule) IsOpenOn(date time.Time) bool {
	for _, wd := range s.ClosedWeekdays {
		if date.Weekday() == wd {
			return false
		}
	}
	return true
}
