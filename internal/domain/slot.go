package domain

import "time"

// SlotOccupancy is the result of an availability check for one (service, date, time) slot
type SlotOccupancy struct {
	ServiceName string
	Date        time.Time
	Time        string
	Booked      int // active appointments across all sources
	Capacity    int
	Exempt      bool // Boarding is never capacity limited
}

// IsFull returns true if the slot cannot take another booking
func (s *SlotOccupancy) IsFull() bool {
	if s.Exempt {
		return false
	}
	return s.Booked >= s.Capacity
}

// Remaining returns the number of free places, or -1 for exempt slots
func (s *SlotOccupancy) Remaining() int {
	if s.Exempt {
		return -1
	}
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotOccupancy) OccupancyRate() float64 {
	if s.Exempt || s.Capacity == 0 {
		return 0
	}
	if s.Booked >= s.Capacity {
		return 100
	}
	return float64(s.Booked) / float64(s.Capacity) * 100
}
