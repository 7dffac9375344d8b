package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID     string   `json:"petId" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	ServiceID string   `json:"serviceId" validate:"required"`
	Size      *string  `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	Date      string   `json:"date" validate:"required"` // "2026-06-01"
	EndDate   *string  `json:"endDate,omitempty"`        // только Boarding "7-Days+"
	Time      string   `json:"time" validate:"required"` // "10:00"; для DayCare также HalfDay/FullDay
	AddonIDs  []string `json:"addonIds,omitempty" validate:"max=10"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	*models.AppointmentResponse
	UnitLabel string `json:"unitLabel"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(ownerID string) (*createAppointment.Request, error) {
	category, ok := domain.ParseCategory(r.Category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", r.Category)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		OwnerID:   ownerID,
		PetID:     r.PetID,
		Category:  category,
		ServiceID: r.ServiceID,
		Date:      &date,
		Time:      r.Time,
		AddonIDs:  r.AddonIDs,
		Notes:     r.Notes,
	}

	if r.Size != nil {
		size, _ := domain.ParseSizeTier(*r.Size)
		req.Size = &size
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentResponse: models.FromDomainAppointment(resp.Appointment),
		UnitLabel:           resp.UnitLabel,
	}
}
