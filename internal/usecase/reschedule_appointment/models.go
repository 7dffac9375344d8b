package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request запрос администратора на перенос записи
type Request struct {
	AppointmentID string
	Date          time.Time
	Time          string
}

// Response результат переноса: итоговое состояние сессии и запись
type Response struct {
	Session     *domain.RescheduleSession
	Appointment *domain.Appointment
}
