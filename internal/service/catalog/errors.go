package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrEntryNotFound возвращается, когда услуга не найдена в каталоге
	ErrEntryNotFound = fmt.Errorf("catalog: %w", domain.ErrServiceNotFound)

	// ErrInvalidPrice возвращается, когда услуга не даёт положительной цены
	ErrInvalidPrice = fmt.Errorf("catalog: %w", domain.ErrInvalidPrice)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
