package booking_wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/session"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// UseCase мастер записи: сессии, очередь событий и отправка
type UseCase struct {
	sessions    SessionStore
	petRepo     PetRepository
	catalogRepo CatalogRepository
	creator     AppointmentCreator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	petRepo PetRepository,
	catalogRepo CatalogRepository,
	creator AppointmentCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:    sessions,
		petRepo:     petRepo,
		catalogRepo: catalogRepo,
		creator:     creator,
		logger:      logger,
	}
}

// Start создает пустую сессию владельца
func (uc *UseCase) Start(ownerID string) (*SessionResponse, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner", ErrNotSubmittable)
	}
	sess := uc.sessions.Create(ownerID)
	uc.logger.Info("BookingWizard.Start: created session id=%s for owner=%s", sess.ID, ownerID)
	return toResponse(sess), nil
}

// Get возвращает текущее состояние сессии
func (uc *UseCase) Get(sessionID, ownerID string) (*SessionResponse, error) {
	sess, err := uc.load(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return toResponse(sess), nil
}

// ApplyEvents применяет события по порядку к копии выбора.
// Если хоть одно событие отклонено, сессия не меняется.
func (uc *UseCase) ApplyEvents(ctx context.Context, req *ApplyRequest) (*SessionResponse, error) {
	uc.logger.Info("BookingWizard.ApplyEvents: session=%s, events=%d", req.SessionID, len(req.Events))

	// 1. Загружаем сессию и проверяем владельца и версию
	sess, err := uc.load(req.SessionID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion != sess.Version {
		uc.logger.Warn("BookingWizard.ApplyEvents: session=%s version=%d, expected=%d",
			req.SessionID, sess.Version, *req.ExpectedVersion)
		return nil, ErrVersionConflict
	}

	// 2. Применяем события к копии
	selection := sess.Selection.Clone()
	for i, event := range req.Events {
		if err := uc.apply(ctx, req.OwnerID, selection, event); err != nil {
			uc.logger.Warn("BookingWizard.ApplyEvents: session=%s event #%d (%s) rejected: %v",
				req.SessionID, i, event.Type, err)
			return nil, fmt.Errorf("event %d (%s): %w", i, event.Type, err)
		}
	}

	// 3. Сохраняем с проверкой версии
	sess.Selection = selection
	saved, err := uc.sessions.Save(sess)
	if err != nil {
		return nil, uc.mapStoreError("ApplyEvents", req.SessionID, err)
	}

	uc.logger.Info("BookingWizard.ApplyEvents: session=%s is at step %s", saved.ID, saved.Selection.Step())
	return toResponse(saved), nil
}

// Submit создает запись из выбора сессии. При ошибке сессия остается как была,
// после успешного создания удаляется.
func (uc *UseCase) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	uc.logger.Info("BookingWizard.Submit: session=%s", req.SessionID)

	sess, err := uc.load(req.SessionID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	if !sess.Selection.IsSubmittable() {
		uc.logger.Warn("BookingWizard.Submit: session=%s is at step %s", req.SessionID, sess.Selection.Step())
		return nil, fmt.Errorf("%w: session is at step %s", ErrNotSubmittable, sess.Selection.Step())
	}

	created, err := uc.creator.Execute(ctx, create_appointment.RequestFromSelection(sess.OwnerID, sess.Selection))
	if err != nil {
		uc.logger.Warn("BookingWizard.Submit: session=%s failed: %v", req.SessionID, err)
		return nil, err
	}

	uc.sessions.Delete(sess.ID)
	uc.logger.Info("BookingWizard.Submit: session=%s created appointment id=%s", req.SessionID, created.Appointment.ID)

	return &SubmitResponse{Appointment: created.Appointment, UnitLabel: created.UnitLabel}, nil
}

// Discard удаляет сессию владельца
func (uc *UseCase) Discard(sessionID, ownerID string) error {
	if _, err := uc.load(sessionID, ownerID); err != nil {
		return err
	}
	uc.sessions.Delete(sessionID)
	return nil
}

func (uc *UseCase) apply(ctx context.Context, ownerID string, s *domain.BookingSelection, event Event) error {
	value := strings.TrimSpace(event.Value)

	switch event.Type {
	case EventSelectPet:
		if value == "" {
			return fmt.Errorf("%w: pet", domain.ErrInvalidSelection)
		}
		pet, err := uc.petRepo.GetByID(ctx, ownerID, value)
		if err != nil {
			if errors.Is(err, domain.ErrPetNotFound) {
				return ErrPetNotFound
			}
			return fmt.Errorf("%w: get pet: %v", ErrInternal, err)
		}
		return s.SelectPet(pet.ID, pet.Species)

	case EventSelectCategory:
		category, ok := domain.ParseCategory(value)
		if !ok {
			return fmt.Errorf("%w: category %q", domain.ErrInvalidSelection, value)
		}
		return s.SelectCategory(category)

	case EventSelectPackage:
		if s.Category == "" {
			return fmt.Errorf("%w: category", domain.ErrMissingSelection)
		}
		if value == "" {
			return fmt.Errorf("%w: package", domain.ErrInvalidSelection)
		}
		entry, err := uc.catalogRepo.GetEntry(ctx, s.Category, s.Species, value)
		if err != nil {
			if errors.Is(err, domain.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: get catalog entry: %v", ErrInternal, err)
		}
		return s.SelectPackage(entry.ID, domain.PackageTraits{
			RequiresSize:    entry.RequiresSizeTier(s.Species),
			RequiresEndDate: entry.RequiresEndDate(),
		})

	case EventSelectSize:
		size, ok := domain.ParseSizeTier(value)
		if !ok {
			return fmt.Errorf("%w: size %q", domain.ErrInvalidSelection, value)
		}
		return s.SelectSize(size)

	case EventSelectDate:
		date, err := parseDate(value)
		if err != nil {
			return err
		}
		return s.SelectDate(date)

	case EventSelectEndDate:
		date, err := parseDate(value)
		if err != nil {
			return err
		}
		return s.SelectEndDate(date)

	case EventSelectTime:
		return s.SelectTime(value)

	case EventSetAddons:
		return s.SetAddons(event.Values)

	case EventSetNotes:
		return s.SetNotes(value)
	}

	return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
}

// load возвращает сессию, только если она принадлежит ownerID
func (uc *UseCase) load(sessionID, ownerID string) (*session.Session, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, uc.mapStoreError("load", sessionID, err)
	}
	if sess.OwnerID != ownerID {
		uc.logger.Warn("BookingWizard: session=%s does not belong to owner=%s", sessionID, ownerID)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (uc *UseCase) mapStoreError(op, sessionID string, err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, session.ErrVersionConflict):
		uc.logger.Warn("BookingWizard.%s: session=%s modified concurrently", op, sessionID)
		return ErrVersionConflict
	}
	uc.logger.Error("BookingWizard.%s: session=%s: %v", op, sessionID, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidSelection, value)
	}
	return date, nil
}

func toResponse(sess *session.Session) *SessionResponse {
	return &SessionResponse{
		ID:          sess.ID,
		OwnerID:     sess.OwnerID,
		Version:     sess.Version,
		Step:        sess.Selection.Step(),
		Submittable: sess.Selection.IsSubmittable(),
		Selection:   sess.Selection,
		UpdatedAt:   sess.UpdatedAt,
	}
}
