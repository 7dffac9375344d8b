package check_availability

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request запрос проверки доступности слота
type Request struct {
	ServiceName string
	// Category - категория услуги; для Boarding проверка вместимости не выполняется
	Category domain.Category
	Date     time.Time
	Time     string
}

// Response результат проверки доступности
type Response struct {
	Available bool
	Slot      domain.SlotOccupancy
}
