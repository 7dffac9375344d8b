package booking_wizard

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// EventType тип события мастера записи
type EventType string

const (
	EventSelectPet      EventType = "select_pet"
	EventSelectCategory EventType = "select_category"
	EventSelectPackage  EventType = "select_package"
	EventSelectSize     EventType = "select_size"
	EventSelectDate     EventType = "select_date"
	EventSelectEndDate  EventType = "select_end_date"
	EventSelectTime     EventType = "select_time"
	EventSetAddons      EventType = "set_addons"
	EventSetNotes       EventType = "set_notes"
)

// Event одно действие пользователя в мастере. Value - значение поля,
// Values - список для set_addons. Даты в формате 2006-01-02.
type Event struct {
	Type   EventType
	Value  string
	Values []string
}

// ApplyRequest очередь событий для одной сессии
type ApplyRequest struct {
	SessionID       string
	OwnerID         string
	ExpectedVersion *int64 // если задана, сессия должна быть этой версии
	Events          []Event
}

// SubmitRequest запрос на отправку сессии
type SubmitRequest struct {
	SessionID string
	OwnerID   string
}

// SessionResponse состояние сессии после операции
type SessionResponse struct {
	ID          string
	OwnerID     string
	Version     int64
	Step        domain.WizardStep
	Submittable bool
	Selection   *domain.BookingSelection
	UpdatedAt   time.Time
}

// SubmitResponse созданная запись
type SubmitResponse struct {
	Appointment *domain.Appointment
	UnitLabel   string
}
