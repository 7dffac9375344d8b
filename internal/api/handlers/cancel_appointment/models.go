package cancel_appointment

import (
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(actor models.Actor) *models.CancelRequest {
	req := &models.CancelRequest{Actor: actor}
	if r.CancellationReason != nil {
		if reason := strings.TrimSpace(*r.CancellationReason); reason != "" {
			req.Reason = &reason
		}
	}
	return req
}
