package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// Service сервис для работы с записями.
// Записи читаются из основного хранилища и старого узла bookings.
type Service struct {
	primary AppointmentSource
	legacy  AppointmentSource
	logger  Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	primary AppointmentSource,
	legacy AppointmentSource,
	logger Logger,
) *Service {
	return &Service{
		primary: primary,
		legacy:  legacy,
		logger:  logger,
	}
}

// GetByID получает запись по ID.
// Видеть запись может её владелец или администратор.
func (s *Service) GetByID(ctx context.Context, id string, actor models.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, actor.UserID)

	appointment, _, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(appointment.OwnerID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s source=%s", id, appointment.Source)
	return models.FromDomainAppointment(appointment), nil
}

// GetOwnerAppointments получает записи владельца из обоих источников.
// Опционально фильтрует по статусу.
func (s *Service) GetOwnerAppointments(ctx context.Context, req *models.GetOwnerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetOwnerAppointments: fetching appointments for owner=%s, status=%v", req.OwnerID, req.Status)

	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if !req.Actor.CanAccess(req.OwnerID) {
		s.logger.Warn("GetOwnerAppointments: access denied for user=%s to owner=%s", req.Actor.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentsFilter{
		OwnerID:         &req.OwnerID,
		IncludeTerminal: req.IncludeTerminal,
	}
	if req.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetOwnerAppointments: invalid status=%s for owner=%s", *req.Status, req.OwnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.listAll(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerAppointments: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerAppointments: successfully fetched %d appointments for owner=%s", len(appointments), req.OwnerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListAppointments получает записи с фильтрацией (для администратора).
//
// Примеры:
// - Все активные записи: ListAppointments(ctx, &ListAppointmentsRequest{})
// - Записи на дату: указать Date
// - Записи за период: указать StartDate и EndDate
// - Включая отменённые и завершённые: IncludeTerminal = true
func (s *Service) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := "ListAppointments: fetching appointments"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.ServiceName != nil {
		logMsg += fmt.Sprintf(", service=%s", *req.ServiceName)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeTerminal {
		logMsg += ", includeTerminal=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListAppointments: end date before start date")
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter := domain.AppointmentsFilter{
		ServiceName:     req.ServiceName,
		Date:            req.Date,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeTerminal: req.IncludeTerminal,
	}
	if req.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.listAll(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAppointments: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись.
// Владелец может отменить свою запись, администратор любую.
// Причина отмены необязательна.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, req.Actor.UserID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	appointment, source, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.Actor.CanAccess(appointment.OwnerID) {
		s.logger.Warn("Cancel: access denied for user=%s to appointment id=%s", req.Actor.UserID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s has terminal status=%s", id, appointment.Status)
		return fmt.Errorf("%w: status %s", ErrNotModifiable, appointment.Status)
	}

	if err := source.Cancel(ctx, id, req.Reason); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to cancel appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s source=%s", id, appointment.Source)
	return nil
}

// UpdateStatus обновляет статус записи (для администратора).
// Переходы из завершённого или отменённого состояния запрещены.
// Уведомление владельцу не отправляется.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	status, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointment, source, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if appointment.Status.IsTerminal() {
		s.logger.Warn("UpdateStatus: appointment id=%s has terminal status=%s", id, appointment.Status)
		return fmt.Errorf("%w: status %s", ErrNotModifiable, appointment.Status)
	}

	if appointment.Status == status {
		s.logger.Info("UpdateStatus: appointment id=%s already has status=%s", id, status)
		return nil
	}

	// Отмена через смену статуса фиксирует время отмены, причина остаётся пустой
	if status == domain.StatusCancelled {
		err = source.Cancel(ctx, id, nil)
	} else {
		err = source.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, status)
	return nil
}

// find ищет запись сначала в основном хранилище, затем в старом узле
func (s *Service) find(ctx context.Context, id string) (*domain.Appointment, AppointmentSource, error) {
	appointment, err := s.primary.GetByID(ctx, id)
	if err == nil {
		return appointment, s.primary, nil
	}
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		return nil, nil, err
	}

	appointment, err = s.legacy.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return appointment, s.legacy, nil
}

// listAll объединяет записи обоих источников, сортирует по дате и времени (новые первыми)
func (s *Service) listAll(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	primary, err := s.primary.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	legacy, err := s.legacy.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("legacy: %w", err)
	}

	all := make([]*domain.Appointment, 0, len(primary)+len(legacy))
	all = append(all, primary...)
	all = append(all, legacy...)

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Time > all[j].Time
	})

	return all, nil
}
