package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date" validate:"required"` // "2026-06-01"
	Time string `json:"time" validate:"required"` // "10:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	State       string                      `json:"state"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}

// ConflictsResponse результат проверки конфликтов
type ConflictsResponse struct {
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	HasConflicts  bool     `json:"hasConflicts"`
	ConflictsWith []string `json:"conflictsWith"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID string) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		Time:          r.Time,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		State:       string(resp.Session.State),
		Appointment: models.FromDomainAppointment(resp.Appointment),
	}
}
