package get_available_slots

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ServiceName) == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}

	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateSchedule проверяет рабочее время
func validateSchedule(s Schedule) error {
	if s.StepMinutes <= 0 {
		return fmt.Errorf("%w: slot step must be positive", ErrInvalidInput)
	}
	if err := s.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	if err := s.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}
	if !s.Open.IsBefore(s.Close) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceDays = 0, нет ограничений на дату
	if advanceDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, advanceDays)
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, time.UTC)

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceDays)
	}

	return nil
}
