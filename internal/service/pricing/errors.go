package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrInvalidPrice цена не положительная или не конечная
	ErrInvalidPrice = fmt.Errorf("pricing: %w", domain.ErrInvalidPrice)
)
