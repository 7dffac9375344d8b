package models

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanAccess возвращает true для владельца записи и администратора
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin || (a.UserID != "" && a.UserID == ownerID)
}

// Request модели

// GetOwnerAppointmentsRequest запрос записей владельца
type GetOwnerAppointmentsRequest struct {
	Actor           Actor
	OwnerID         string
	Status          *string
	IncludeTerminal bool
}

// ListAppointmentsRequest запрос администратора со списком фильтров
type ListAppointmentsRequest struct {
	Date            *time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	ServiceName     *string
	Status          *string
	IncludeTerminal bool
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Actor  Actor
	Reason *string
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	Status string
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string   `json:"id"`
	Source          string   `json:"source"`
	OwnerID         string   `json:"ownerId"`
	PetID           string   `json:"petId"`
	PetName         string   `json:"petName,omitempty"`
	ServiceCategory string   `json:"serviceCategory,omitempty"`
	ServiceID       string   `json:"serviceId,omitempty"`
	ServiceName     string   `json:"serviceName"`
	Species         string   `json:"species,omitempty"`
	Size            *string  `json:"size,omitempty"`
	Date            string   `json:"date"` // "2026-05-01"
	Time            string   `json:"time"` // "10:00" или HalfDay/FullDay
	EndDate         *string  `json:"endDate,omitempty"`
	Nights          *int     `json:"nights,omitempty"`
	AddonIDs        []string `json:"addonIds"`
	BaseAmount      float64  `json:"baseAmount"`
	AddonAmount     float64  `json:"addonAmount"`
	TotalAmount     float64  `json:"totalAmount"`
	Status          string   `json:"status"`
	Notes           *string  `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		Source:             string(a.Source),
		OwnerID:            a.OwnerID,
		PetID:              a.PetID,
		PetName:            a.PetName,
		ServiceCategory:    string(a.ServiceCategory),
		ServiceID:          a.ServiceID,
		ServiceName:        a.ServiceName,
		Species:            string(a.Species),
		Date:               a.Date.Format(domain.DateFormat),
		Time:               a.Time,
		Nights:             a.Nights,
		AddonIDs:           a.AddonIDs,
		BaseAmount:         a.BaseAmount,
		AddonAmount:        a.AddonAmount,
		TotalAmount:        a.TotalAmount,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if resp.AddonIDs == nil {
		resp.AddonIDs = []string{}
	}

	if a.Size != nil {
		size := string(*a.Size)
		resp.Size = &size
	}
	if a.EndDate != nil {
		end := a.EndDate.Format(domain.DateFormat)
		resp.EndDate = &end
	}
	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}
