package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/session"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// SessionStore хранилище сессий мастера записи
type SessionStore interface {
	Create(ownerID string) *session.Session
	Get(id string) (*session.Session, error)
	Save(sess *session.Session) (*session.Session, error)
	Delete(id string)
}

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	GetByID(ctx context.Context, ownerID, petID string) (*domain.Pet, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetEntry(ctx context.Context, category domain.Category, species domain.Species, id string) (*domain.ServiceCatalogEntry, error)
}

// AppointmentCreator создание записи из собранного выбора
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
