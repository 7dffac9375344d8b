package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrEntryNotFound возвращается, когда услуга не найдена в каталоге
	ErrEntryNotFound = fmt.Errorf("catalog.repository: %w", domain.ErrServiceNotFound)

	// ErrAddonNotFound возвращается, когда доп. услуга не найдена
	ErrAddonNotFound = errors.New("catalog.repository: addon not found")

	// ErrDecode возвращается, когда документ не удаётся разобрать
	ErrDecode = errors.New("catalog.repository: failed to decode document")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("catalog.repository: store error")
)
