package booking_session

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	bookingWizard "github.com/m04kA/SMC-PetCareService/internal/usecase/booking_wizard"
)

// EventRequest одно событие мастера
type EventRequest struct {
	Type   string   `json:"type" validate:"required,oneof=select_pet select_category select_package select_size select_date select_end_date select_time set_addons set_notes"`
	Value  string   `json:"value,omitempty" validate:"max=500"`
	Values []string `json:"values,omitempty" validate:"max=10"`
}

// ApplyEventsRequest очередь событий
type ApplyEventsRequest struct {
	ExpectedVersion *int64         `json:"expectedVersion,omitempty"`
	Events          []EventRequest `json:"events" validate:"required,min=1,max=20,dive"`
}

// SelectionResponse текущий выбор
type SelectionResponse struct {
	PetID           string   `json:"petId,omitempty"`
	Species         string   `json:"species,omitempty"`
	Category        string   `json:"category,omitempty"`
	ServiceID       string   `json:"serviceId,omitempty"`
	RequiresSize    bool     `json:"requiresSize"`
	RequiresEndDate bool     `json:"requiresEndDate"`
	Size            *string  `json:"size,omitempty"`
	Date            *string  `json:"date,omitempty"`
	EndDate         *string  `json:"endDate,omitempty"`
	Time            string   `json:"time,omitempty"`
	AddonIDs        []string `json:"addonIds"`
	Notes           *string  `json:"notes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID          string            `json:"id"`
	Version     int64             `json:"version"`
	Step        string            `json:"step"`
	Submittable bool              `json:"submittable"`
	Selection   SelectionResponse `json:"selection"`
	UpdatedAt   string            `json:"updatedAt"`
}

// SubmitResponse HTTP response model
type SubmitResponse struct {
	*models.AppointmentResponse
	UnitLabel string `json:"unitLabel"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyEventsRequest) ToUseCaseRequest(sessionID, ownerID string) *bookingWizard.ApplyRequest {
	events := make([]bookingWizard.Event, 0, len(r.Events))
	for _, e := range r.Events {
		events = append(events, bookingWizard.Event{
			Type:   bookingWizard.EventType(e.Type),
			Value:  e.Value,
			Values: e.Values,
		})
	}
	return &bookingWizard.ApplyRequest{
		SessionID:       sessionID,
		OwnerID:         ownerID,
		ExpectedVersion: r.ExpectedVersion,
		Events:          events,
	}
}

// FromSessionResponse конвертирует состояние сессии в HTTP response
func FromSessionResponse(resp *bookingWizard.SessionResponse) *SessionResponse {
	s := resp.Selection
	selection := SelectionResponse{
		PetID:           s.PetID,
		Species:         string(s.Species),
		Category:        string(s.Category),
		ServiceID:       s.ServiceID,
		RequiresSize:    s.Traits.RequiresSize,
		RequiresEndDate: s.Traits.RequiresEndDate,
		Date:            formatDate(s.Date),
		EndDate:         formatDate(s.EndDate),
		Time:            s.Time,
		AddonIDs:        s.AddonIDs,
		Notes:           s.Notes,
	}
	if selection.AddonIDs == nil {
		selection.AddonIDs = []string{}
	}
	if s.Size != nil {
		size := string(*s.Size)
		selection.Size = &size
	}

	return &SessionResponse{
		ID:          resp.ID,
		Version:     resp.Version,
		Step:        resp.Step.String(),
		Submittable: resp.Submittable,
		Selection:   selection,
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
