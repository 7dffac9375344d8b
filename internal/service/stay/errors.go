package stay

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrInvalidDateRange дата выезда раньше минимальной для пакета
	ErrInvalidDateRange = fmt.Errorf("stay: %w", domain.ErrInvalidDateRange)
)
