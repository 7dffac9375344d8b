package check_availability

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AppointmentLister источник записей (основное хранилище или старый узел)
type AppointmentLister interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Metrics интерфейс метрик проверки доступности
type Metrics interface {
	ObserveAvailability(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
