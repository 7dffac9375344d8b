package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id string, actor models.Actor) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
