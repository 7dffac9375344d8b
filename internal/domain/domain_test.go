package domain

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"grooming", CategoryGrooming, true},
		{"GROOMING", CategoryGrooming, true},
		{"Day Care", CategoryDayCare, true},
		{"day-care", CategoryDayCare, true},
		{"daycare", CategoryDayCare, true},
		{" boarding ", CategoryBoarding, true},
		{"spa", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBoardingPackage(t *testing.T) {
	tests := []struct {
		in   string
		want BoardingPackage
		ok   bool
	}{
		{"3-Days", Boarding3Days, true},
		{"3 days", Boarding3Days, true},
		{"5 Days", Boarding5Days, true},
		{"5_DAYS", Boarding5Days, true},
		{"7-Days+", Boarding7DaysPlus, true},
		{"7 days", Boarding7DaysPlus, true},
		{"10 Days", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseBoardingPackage(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"9:00", "09:00", true},
		{"09:00", "09:00", true},
		{"14:30", "14:30", true},
		{"HalfDay", "HalfDay", true},
		{"Half Day", "HalfDay", true},
		{"half-day", "HalfDay", true},
		{"full_day", "FullDay", true},
		{"25:00", "", false},
		{"noon", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSlotTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlotTimeFor_LabelsOnlyForDayCare(t *testing.T) {
	got, ok := ParseSlotTimeFor(CategoryDayCare, "half day")
	require.True(t, ok)
	assert.Equal(t, "HalfDay", got)

	_, ok = ParseSlotTimeFor(CategoryGrooming, "Half Day")
	assert.False(t, ok)

	got, ok = ParseSlotTimeFor(CategoryGrooming, "9:30")
	require.True(t, ok)
	assert.Equal(t, "09:30", got)
}

func TestServiceCatalogEntry_MinTierPrice(t *testing.T) {
	entry := ServiceCatalogEntry{
		Category: CategoryGrooming,
		Species:  SpeciesDog,
		Pricing:  map[SizeTier]float64{SizeSmall: 40, SizeMedium: 55, SizeLarge: 70},
	}

	min, ok := entry.MinTierPrice()
	require.True(t, ok)
	assert.Equal(t, 40.0, min)
	assert.True(t, entry.RequiresSizeTier(SpeciesDog))
	assert.False(t, entry.RequiresSizeTier(SpeciesCat))

	entry.BackfillPrice()
	require.NotNil(t, entry.Price)
	assert.Equal(t, 40.0, *entry.Price)
}

func TestServiceCatalogEntry_IgnoresNonPositiveTiers(t *testing.T) {
	entry := ServiceCatalogEntry{
		Pricing: map[SizeTier]float64{SizeSmall: 0, SizeMedium: -5, SizeLarge: math.NaN()},
	}

	assert.False(t, entry.HasTieredPricing())
	_, ok := entry.TierPrice(SizeSmall)
	assert.False(t, ok)
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := &Appointment{ID: "a1", AppointmentRequest: AppointmentRequest{
		ServiceName: "Bath", Date: date, Time: "10:00", Status: StatusScheduled,
	}}

	assert.True(t, a.OccupiesSlot("Bath", date.Add(3*time.Hour), "10:00"))
	assert.False(t, a.OccupiesSlot("Bath", date, "10:30"))
	assert.False(t, a.OccupiesSlot("Trim", date, "10:00"))

	a.Status = StatusCompleted
	assert.False(t, a.OccupiesSlot("Bath", date, "10:00"))
}

func TestAppointment_CollidesWith(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := &Appointment{ID: "a1", AppointmentRequest: AppointmentRequest{
		ServiceName: "Bath", Date: date, Time: "10:00", Status: StatusPending,
	}}

	assert.True(t, a.CollidesWith("other", date, "10:00"))
	assert.False(t, a.CollidesWith("a1", date, "10:00"))

	a.Status = StatusCancelled
	assert.False(t, a.CollidesWith("other", date, "10:00"))
}

func TestAppointmentsFilter_Matches(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	owner := "u1"
	cancelled := StatusCancelled
	a := &Appointment{AppointmentRequest: AppointmentRequest{
		OwnerID: owner, Date: date, Time: "10:00", Status: StatusCancelled,
	}}

	assert.False(t, AppointmentsFilter{OwnerID: &owner}.Matches(a))
	assert.True(t, AppointmentsFilter{OwnerID: &owner, IncludeTerminal: true}.Matches(a))
	assert.True(t, AppointmentsFilter{Status: &cancelled}.Matches(a))

	later := date.AddDate(0, 0, 1)
	assert.False(t, AppointmentsFilter{StartDate: &later, IncludeTerminal: true}.Matches(a))
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrSlotFull)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSlotFull, kind)

	_, ok = KindOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestSlotOccupancy(t *testing.T) {
	s := SlotOccupancy{Booked: 1, Capacity: MaxConcurrentBookings}
	assert.False(t, s.IsFull())
	assert.Equal(t, 1, s.Remaining())
	assert.Equal(t, 50.0, s.OccupancyRate())

	s.Booked = 2
	assert.True(t, s.IsFull())
	assert.Equal(t, 0, s.Remaining())

	exempt := SlotOccupancy{Booked: 10, Capacity: MaxConcurrentBookings, Exempt: true}
	assert.False(t, exempt.IsFull())
}

func TestRescheduleSession_Transitions(t *testing.T) {
	s := NewRescheduleSession("a1")
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.ErrorIs(t, s.Propose(date, "10:00"), ErrInvalidTransition)

	require.NoError(t, s.Open())
	require.NoError(t, s.Propose(date, "10:00"))
	require.NoError(t, s.MarkConflict([]string{"a2"}))
	assert.Equal(t, RescheduleConflict, s.State)

	require.ErrorIs(t, s.MarkSaved(), ErrInvalidTransition)

	require.NoError(t, s.Propose(date, "11:00"))
	assert.Equal(t, RescheduleEditing, s.State)
	assert.Empty(t, s.ConflictsWith)

	require.NoError(t, s.MarkSaved())
	assert.Equal(t, RescheduleSaved, s.State)
	require.ErrorIs(t, s.Open(), ErrInvalidTransition)
}
