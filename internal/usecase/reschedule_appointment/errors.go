package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена ни в одном источнике
	ErrAppointmentNotFound = fmt.Errorf("reschedule_appointment: %w", domain.ErrAppointmentNotFound)

	// ErrScheduleConflict возвращается, когда на новую дату и время уже есть другая активная запись
	ErrScheduleConflict = fmt.Errorf("reschedule_appointment: %w", domain.ErrScheduleConflict)

	// ErrNotModifiable возвращается при переносе завершённой или отменённой записи
	ErrNotModifiable = fmt.Errorf("reschedule_appointment: %w", domain.ErrNotModifiable)

	// ErrConflictCheckFailed возвращается, когда конфликты не удалось проверить
	ErrConflictCheckFailed = fmt.Errorf("reschedule_appointment: %w", domain.ErrAvailabilityCheckFailed)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
