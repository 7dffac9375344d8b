package reschedule_appointment

import (
	"context"
	"time"

	rescheduleAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
)

type RescheduleUseCase interface {
	Execute(ctx context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error)
	DetectConflicts(ctx context.Context, candidateID string, date time.Time, slotTime string) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
