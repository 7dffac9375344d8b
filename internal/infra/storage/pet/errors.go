package pet

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrPetNotFound возвращается, когда питомец не найден у владельца
	ErrPetNotFound = fmt.Errorf("pet.repository: %w", domain.ErrPetNotFound)

	// ErrDecode возвращается, когда документ не удаётся разобрать
	ErrDecode = errors.New("pet.repository: failed to decode document")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("pet.repository: store error")
)
