package booking_wizard

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена, истекла или принадлежит другому владельцу
	ErrSessionNotFound = errors.New("booking_wizard: session not found")

	// ErrVersionConflict возвращается, когда сессию изменил параллельный запрос
	ErrVersionConflict = errors.New("booking_wizard: session was modified concurrently")

	// ErrUnknownEvent возвращается для события неизвестного типа
	ErrUnknownEvent = fmt.Errorf("booking_wizard: unknown event: %w", domain.ErrInvalidSelection)

	// ErrNotSubmittable возвращается при отправке незаполненной сессии
	ErrNotSubmittable = fmt.Errorf("booking_wizard: %w", domain.ErrMissingSelection)

	// ErrPetNotFound возвращается, когда питомец не найден у владельца
	ErrPetNotFound = fmt.Errorf("booking_wizard: %w", domain.ErrPetNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("booking_wizard: %w", domain.ErrServiceNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("booking_wizard: internal error")
)
