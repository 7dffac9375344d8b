package booking_session

import (
	"context"

	bookingWizard "github.com/m04kA/SMC-PetCareService/internal/usecase/booking_wizard"
)

type BookingWizardUseCase interface {
	Start(ownerID string) (*bookingWizard.SessionResponse, error)
	Get(sessionID, ownerID string) (*bookingWizard.SessionResponse, error)
	ApplyEvents(ctx context.Context, req *bookingWizard.ApplyRequest) (*bookingWizard.SessionResponse, error)
	Submit(ctx context.Context, req *bookingWizard.SubmitRequest) (*bookingWizard.SubmitResponse, error)
	Discard(sessionID, ownerID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
