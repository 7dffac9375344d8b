package check_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAvailabilityCheckFailed возвращается, когда хранилище недоступно (проверка закрывается отказом)
	ErrAvailabilityCheckFailed = fmt.Errorf("check_availability: %w", domain.ErrAvailabilityCheckFailed)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")
)
