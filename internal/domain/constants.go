package domain

// MaxConcurrentBookings is the fixed capacity of one (service, date, time) slot
const MaxConcurrentBookings = 2

// Boarding stay rules (day spans from the start date)
const (
	Boarding3DaysSpan    = 2
	Boarding5DaysSpan    = 4
	Boarding7DaysMinSpan = 6
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAddonsPerAppointment     = 10
	MaxBoardingNights           = 60
)

// Unit labels returned by the pricing resolver
const (
	UnitTotalForPackage = "total for package"
	UnitPerDay          = "per day"
	UnitFlat            = "flat"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses are excluded from availability and conflict counting
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses are counted toward capacity
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusPending,
}
