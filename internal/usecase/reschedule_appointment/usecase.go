package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	outcomeSaved    = "saved"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// UseCase use case переноса записи администратором
type UseCase struct {
	primary AppointmentSource
	legacy  AppointmentSource
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	primary AppointmentSource,
	legacy AppointmentSource,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		primary: primary,
		legacy:  legacy,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute переносит запись на новую дату и время.
// Idle -> Editing -> Conflict, если на дату и время есть другая активная запись,
// иначе Editing -> Saved. Повторных попыток нет: каждая ошибка возвращается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%s, date=%s, time=%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if strings.TrimSpace(req.AppointmentID) == "" || req.Date.IsZero() || strings.TrimSpace(req.Time) == "" {
		uc.metrics.ObserveReschedule(outcomeRejected)
		return nil, fmt.Errorf("%w: appointment id, date and time are required", ErrInvalidInput)
	}

	session := domain.NewRescheduleSession(req.AppointmentID)
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 2. Ищем запись в обоих источниках
	appointment, source, err := uc.find(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			uc.metrics.ObserveReschedule(outcomeRejected)
			uc.logger.Warn("RescheduleAppointment: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.metrics.ObserveReschedule(outcomeFailed)
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Завершённые и отменённые записи не переносятся
	if !appointment.CanBeRescheduled() {
		uc.metrics.ObserveReschedule(outcomeRejected)
		uc.logger.Warn("RescheduleAppointment: appointment id=%s has terminal status=%s", req.AppointmentID, appointment.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNotModifiable, appointment.Status)
	}

	slotTime, err := normalizeTime(appointment.ServiceCategory, req.Time)
	if err != nil {
		uc.metrics.ObserveReschedule(outcomeRejected)
		return nil, err
	}

	if err := session.Propose(req.Date, slotTime); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Проверяем конфликты по точному совпадению даты и времени
	conflicts, err := uc.DetectConflicts(ctx, req.AppointmentID, *session.Date, slotTime)
	if err != nil {
		uc.metrics.ObserveReschedule(outcomeFailed)
		return nil, err
	}
	if len(conflicts) > 0 {
		if err := session.MarkConflict(conflicts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.metrics.ObserveReschedule(outcomeConflict)
		uc.logger.Warn("RescheduleAppointment: appointment id=%s conflicts with %v", req.AppointmentID, conflicts)
		return &Response{Session: session, Appointment: appointment},
			fmt.Errorf("%w: %s", ErrScheduleConflict, strings.Join(conflicts, ", "))
	}

	// 5. Сохраняем в источнике, где хранится запись
	if err := source.Reschedule(ctx, req.AppointmentID, *session.Date, slotTime); err != nil {
		uc.metrics.ObserveReschedule(outcomeFailed)
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to update appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
	}

	if err := session.MarkSaved(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	appointment.Date = *session.Date
	appointment.Time = slotTime
	uc.metrics.ObserveReschedule(outcomeSaved)
	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%s to %s %s",
		req.AppointmentID, session.Date.Format(domain.DateFormat), slotTime)

	return &Response{Session: session, Appointment: appointment}, nil
}

// DetectConflicts возвращает ID активных записей (кроме candidateID) точно на эту дату и время
// в основном хранилище и старом узле. Одна такая запись уже блокирует перенос.
func (uc *UseCase) DetectConflicts(ctx context.Context, candidateID string, date time.Time, slotTime string) ([]string, error) {
	slotTime, ok := domain.ParseSlotTime(slotTime)
	if !ok {
		return nil, fmt.Errorf("%w: time", ErrInvalidInput)
	}
	day := domain.DateOnly(date)
	filter := domain.AppointmentsFilter{Date: &day, Time: &slotTime}

	conflicts := make([]string, 0)
	for _, source := range []struct {
		name string
		repo AppointmentSource
	}{
		{"primary", uc.primary},
		{"legacy", uc.legacy},
	} {
		appointments, err := source.repo.List(ctx, filter)
		if err != nil {
			uc.logger.Error("DetectConflicts: %s store failed for %s %s: %v",
				source.name, day.Format(domain.DateFormat), slotTime, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrConflictCheckFailed, source.name, err)
		}
		for _, a := range appointments {
			if a.CollidesWith(candidateID, day, slotTime) {
				conflicts = append(conflicts, a.ID)
			}
		}
	}

	return conflicts, nil
}

// find ищет запись сначала в основном хранилище, затем в старом узле
func (uc *UseCase) find(ctx context.Context, id string) (*domain.Appointment, AppointmentSource, error) {
	appointment, err := uc.primary.GetByID(ctx, id)
	if err == nil {
		return appointment, uc.primary, nil
	}
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		return nil, nil, err
	}

	appointment, err = uc.legacy.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return appointment, uc.legacy, nil
}

// normalizeTime приводит время к HH:MM; для DayCare допускается метка HalfDay/FullDay
func normalizeTime(category domain.Category, value string) (string, error) {
	slotTime, ok := domain.ParseSlotTimeFor(category, value)
	if !ok {
		return "", fmt.Errorf("%w: time %q", ErrInvalidInput, value)
	}
	return slotTime, nil
}
