package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusPending, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	}
	return "", false
}

// IsTerminal returns true for statuses excluded from slot and conflict counting
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AppointmentSource identifies the store an appointment lives in
type AppointmentSource string

const (
	SourcePrimary AppointmentSource = "primary"
	SourceLegacy  AppointmentSource = "legacy"
)

// AppointmentRequest is a validated, priced booking ready for persistence.
// BaseAmount always comes from the pricing resolver.
type AppointmentRequest struct {
	PetID           string
	PetName         string
	OwnerID         string
	ServiceCategory Category
	ServiceID       string
	ServiceName     string
	Species         Species
	Size            *SizeTier
	Date            time.Time
	Time            string // HH:MM, or the daycare label for DayCare
	EndDate         *time.Time
	Nights          *int
	AddonIDs        []string
	BaseAmount      float64
	AddonAmount     float64
	TotalAmount     float64
	Status          AppointmentStatus
	Notes           *string
}

// Appointment is a persisted appointment
type Appointment struct {
	ID     string
	Source AppointmentSource
	AppointmentRequest

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment counts toward capacity and conflicts
func (a *Appointment) IsActive() bool {
	return !a.Status.IsTerminal()
}

// CanBeCancelled returns true if the appointment is not in a terminal state
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// CanBeRescheduled returns true if the appointment is not in a terminal state
func (a *Appointment) CanBeRescheduled() bool {
	return !a.Status.IsTerminal()
}

// OccupiesSlot returns true if the appointment is active and booked for exactly this service, date and time
func (a *Appointment) OccupiesSlot(serviceName string, date time.Time, slotTime string) bool {
	return a.IsActive() &&
		a.ServiceName == serviceName &&
		SameDate(a.Date, date) &&
		a.Time == slotTime
}

// CollidesWith returns true if the appointment is active, has a different id and
// sits at exactly the given date and time
func (a *Appointment) CollidesWith(candidateID string, date time.Time, slotTime string) bool {
	return a.IsActive() &&
		a.ID != candidateID &&
		SameDate(a.Date, date) &&
		a.Time == slotTime
}

// AppointmentsFilter narrows appointment listings
type AppointmentsFilter struct {
	OwnerID         *string
	ServiceName     *string
	Date            *time.Time // exact date
	StartDate       *time.Time
	EndDate         *time.Time
	Time            *string
	Status          *AppointmentStatus
	IncludeTerminal bool
}

// Matches applies the filter in memory (used by document-store sources)
func (f AppointmentsFilter) Matches(a *Appointment) bool {
	if f.OwnerID != nil && a.OwnerID != *f.OwnerID {
		return false
	}
	if f.ServiceName != nil && a.ServiceName != *f.ServiceName {
		return false
	}
	if f.Date != nil && !SameDate(a.Date, *f.Date) {
		return false
	}
	if f.StartDate != nil && DateOnly(a.Date).Before(DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && DateOnly(a.Date).After(DateOnly(*f.EndDate)) {
		return false
	}
	if f.Time != nil && a.Time != *f.Time {
		return false
	}
	if f.Status != nil {
		return a.Status == *f.Status
	}
	if !f.IncludeTerminal && a.Status.IsTerminal() {
		return false
	}
	return true
}

// DateOnly truncates t to a UTC calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
