package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// validateRequest проверяет, что выбраны питомец, категория, услуга, дата и время
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.OwnerID) == "" {
		return fmt.Errorf("%w: owner", ErrMissingSelection)
	}
	if strings.TrimSpace(req.PetID) == "" {
		return fmt.Errorf("%w: pet", ErrMissingSelection)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category", ErrMissingSelection)
	}
	if !req.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSelection, req.Category)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: package", ErrMissingSelection)
	}
	if req.Date == nil || req.Date.IsZero() {
		return fmt.Errorf("%w: date", ErrMissingSelection)
	}
	if strings.TrimSpace(req.Time) == "" {
		return fmt.Errorf("%w: time", ErrMissingSelection)
	}
	if len(req.AddonIDs) > domain.MaxAddonsPerAppointment {
		return fmt.Errorf("%w: at most %d add-ons", ErrInvalidSelection, domain.MaxAddonsPerAppointment)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidSelection, domain.MaxNotesLength)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceDays (0 - без ограничения)
func validateDate(date, now time.Time, advanceDays int) error {
	day := domain.DateOnly(date)
	today := domain.DateOnly(now)

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidSelection, day.Format(domain.DateFormat))
	}
	if advanceDays > 0 && day.After(today.AddDate(0, 0, advanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidSelection, advanceDays)
	}
	return nil
}

// normalizeTime приводит время к HH:MM; для DayCare допускается метка HalfDay/FullDay
func normalizeTime(category domain.Category, value string) (string, error) {
	slotTime, ok := domain.ParseSlotTimeFor(category, value)
	if !ok {
		return "", fmt.Errorf("%w: time %q", ErrInvalidSelection, value)
	}
	return slotTime, nil
}
