package legacy

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда запись не найдена в старом узле
	ErrBookingNotFound = fmt.Errorf("legacy.repository: %w", domain.ErrAppointmentNotFound)

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("legacy.repository: store error")
)
