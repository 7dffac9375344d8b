package domain

import "errors"

// ErrorKind is a stable, machine-readable error class exposed to API clients
type ErrorKind string

const (
	KindMissingSizeTier         ErrorKind = "MissingSizeTier"
	KindInvalidPrice            ErrorKind = "InvalidPrice"
	KindAvailabilityCheckFailed ErrorKind = "AvailabilityCheckFailed"
	KindSlotFull                ErrorKind = "SlotFull"
	KindInvalidDateRange        ErrorKind = "InvalidDateRange"
	KindAppointmentNotFound     ErrorKind = "AppointmentNotFound"
	KindScheduleConflict        ErrorKind = "ScheduleConflict"

	KindMissingSelection ErrorKind = "MissingSelection"
	KindInvalidSelection ErrorKind = "InvalidSelection"
	KindPetNotFound      ErrorKind = "PetNotFound"
	KindServiceNotFound  ErrorKind = "ServiceNotFound"
	KindNotModifiable    ErrorKind = "AppointmentNotModifiable"
)

// KindError is a sentinel error carrying an ErrorKind
type KindError struct {
	Kind    ErrorKind
	Message string
}

func (e *KindError) Error() string {
	return e.Message
}

var (
	ErrMissingSizeTier         = &KindError{Kind: KindMissingSizeTier, Message: "size tier is required for tiered pricing"}
	ErrInvalidPrice            = &KindError{Kind: KindInvalidPrice, Message: "resolved price is not a positive finite amount"}
	ErrAvailabilityCheckFailed = &KindError{Kind: KindAvailabilityCheckFailed, Message: "availability could not be determined"}
	ErrSlotFull                = &KindError{Kind: KindSlotFull, Message: "slot is fully booked"}
	ErrInvalidDateRange        = &KindError{Kind: KindInvalidDateRange, Message: "invalid date range"}
	ErrAppointmentNotFound     = &KindError{Kind: KindAppointmentNotFound, Message: "appointment not found"}
	ErrScheduleConflict        = &KindError{Kind: KindScheduleConflict, Message: "another appointment is booked at this date and time"}

	ErrMissingSelection = &KindError{Kind: KindMissingSelection, Message: "required selection is missing"}
	ErrInvalidSelection = &KindError{Kind: KindInvalidSelection, Message: "selection is not valid"}
	ErrPetNotFound      = &KindError{Kind: KindPetNotFound, Message: "pet not found"}
	ErrServiceNotFound  = &KindError{Kind: KindServiceNotFound, Message: "service not found"}
	ErrNotModifiable    = &KindError{Kind: KindNotModifiable, Message: "appointment is in a terminal state"}
)

// KindOf returns the kind of the first KindError in the chain
func KindOf(err error) (ErrorKind, bool) {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind, true
	}
	return "", false
}
