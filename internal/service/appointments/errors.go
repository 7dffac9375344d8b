package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена ни в одном источнике
	ErrAppointmentNotFound = fmt.Errorf("appointments: %w", domain.ErrAppointmentNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrNotModifiable возвращается при изменении завершённой или отменённой записи
	ErrNotModifiable = fmt.Errorf("appointments: %w", domain.ErrNotModifiable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
