package domain

import (
	"errors"
	"fmt"
	"time"
)

// RescheduleState is the state of an admin reschedule attempt
type RescheduleState string

const (
	RescheduleIdle     RescheduleState = "idle"
	RescheduleEditing  RescheduleState = "editing"
	RescheduleConflict RescheduleState = "conflict"
	RescheduleSaved    RescheduleState = "saved"
)

// ErrInvalidTransition is returned for a transition not allowed from the current state
var ErrInvalidTransition = errors.New("invalid reschedule transition")

// RescheduleSession tracks one reschedule of one appointment.
// Idle -> Editing -> {Conflict -> Editing, Saved}. Saved is terminal.
type RescheduleSession struct {
	AppointmentID string
	State         RescheduleState
	Date          *time.Time
	Time          string
	ConflictsWith []string
}

// NewRescheduleSession creates a session in the Idle state
func NewRescheduleSession(appointmentID string) *RescheduleSession {
	return &RescheduleSession{AppointmentID: appointmentID, State: RescheduleIdle}
}

// Open moves Idle -> Editing
func (s *RescheduleSession) Open() error {
	if s.State != RescheduleIdle {
		return fmt.Errorf("%w: open from %s", ErrInvalidTransition, s.State)
	}
	s.State = RescheduleEditing
	return nil
}

// Propose sets a new date and time. Allowed while Editing or after a Conflict,
// which returns the session to Editing.
func (s *RescheduleSession) Propose(date time.Time, slot string) error {
	if s.State != RescheduleEditing && s.State != RescheduleConflict {
		return fmt.Errorf("%w: propose from %s", ErrInvalidTransition, s.State)
	}
	d := DateOnly(date)
	s.Date = &d
	s.Time = slot
	s.ConflictsWith = nil
	s.State = RescheduleEditing
	return nil
}

// MarkConflict moves Editing -> Conflict
func (s *RescheduleSession) MarkConflict(conflictingIDs []string) error {
	if s.State != RescheduleEditing {
		return fmt.Errorf("%w: conflict from %s", ErrInvalidTransition, s.State)
	}
	s.ConflictsWith = conflictingIDs
	s.State = RescheduleConflict
	return nil
}

// MarkSaved moves Editing -> Saved
func (s *RescheduleSession) MarkSaved() error {
	if s.State != RescheduleEditing || s.Date == nil {
		return fmt.Errorf("%w: save from %s", ErrInvalidTransition, s.State)
	}
	s.State = RescheduleSaved
	return nil
}
