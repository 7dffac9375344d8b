package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrMissingSelection возвращается, когда не заполнено обязательное поле записи
	ErrMissingSelection = fmt.Errorf("create_appointment: %w", domain.ErrMissingSelection)

	// ErrInvalidSelection возвращается при некорректном значении поля записи
	ErrInvalidSelection = fmt.Errorf("create_appointment: %w", domain.ErrInvalidSelection)

	// ErrMissingSizeTier возвращается, когда для тарифной услуги не выбран размер
	ErrMissingSizeTier = fmt.Errorf("create_appointment: %w", domain.ErrMissingSizeTier)

	// ErrInvalidDateRange возвращается, когда дата выезда не указана или раньше минимальной
	ErrInvalidDateRange = fmt.Errorf("create_appointment: %w", domain.ErrInvalidDateRange)

	// ErrInvalidPrice возвращается, когда услуга не даёт положительной цены
	ErrInvalidPrice = fmt.Errorf("create_appointment: %w", domain.ErrInvalidPrice)

	// ErrPetNotFound возвращается, когда питомец не найден у владельца
	ErrPetNotFound = fmt.Errorf("create_appointment: %w", domain.ErrPetNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("create_appointment: %w", domain.ErrServiceNotFound)

	// ErrSlotFull возвращается, когда на слот уже записано максимальное количество питомцев
	ErrSlotFull = fmt.Errorf("create_appointment: %w", domain.ErrSlotFull)

	// ErrAvailabilityCheckFailed возвращается, когда доступность слота не удалось проверить
	ErrAvailabilityCheckFailed = fmt.Errorf("create_appointment: %w", domain.ErrAvailabilityCheckFailed)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
