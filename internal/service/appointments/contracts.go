package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AppointmentSource хранилище записей (основное или старый узел)
type AppointmentSource interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, id string, date time.Time, slotTime string) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id string, reason *string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
