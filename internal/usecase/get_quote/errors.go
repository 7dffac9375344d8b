package get_quote

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("get_quote: %w", domain.ErrServiceNotFound)

	// ErrInvalidPrice возвращается, когда услуга не даёт положительной цены
	ErrInvalidPrice = fmt.Errorf("get_quote: %w", domain.ErrInvalidPrice)

	// ErrInvalidDateRange возвращается, когда выбранная дата выезда раньше минимальной
	ErrInvalidDateRange = fmt.Errorf("get_quote: %w", domain.ErrInvalidDateRange)

	// ErrInvalidSelection возвращается при неизвестной доп. услуге
	ErrInvalidSelection = fmt.Errorf("get_quote: %w", domain.ErrInvalidSelection)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
