package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// UseCase use case получения слотов дня с количеством свободных мест
type UseCase struct {
	primary      AppointmentLister
	legacy       AppointmentLister
	schedule     Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	primary AppointmentLister,
	legacy AppointmentLister,
	schedule Schedule,
	logger Logger,
) (*UseCase, error) {
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}
	return &UseCase{
		primary:      primary,
		legacy:       legacy,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, category=%s, date=%s",
		req.ServiceName, req.Category, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	resp := &Response{
		Date:        date,
		ServiceName: req.ServiceName,
		Slots:       []Slot{},
	}

	// 2. Валидация даты
	if err := validateDate(date, now, uc.schedule.AdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Пансион не ограничен вместимостью
	if req.Category == domain.CategoryBoarding {
		resp.Exempt = true
		uc.logger.Info("GetAvailableSlots: boarding service=%s is exempt from capacity", req.ServiceName)
		return resp, nil
	}

	// 4. Выходной день
	if !uc.schedule.IsOpenOn(date) {
		uc.logger.Info("GetAvailableSlots: closed on %s", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 5. Генерируем слоты
	var slotTimes []string
	if req.Category == domain.CategoryDayCare {
		slotTimes = daycareSlots
	} else {
		var err error
		slotTimes, err = generateTimeSlots(uc.schedule, date, now)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
			return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
		}
	}

	// 6. Получаем активные записи услуги на дату из обоих источников
	filter := domain.AppointmentsFilter{
		ServiceName: &req.ServiceName,
		Date:        &date,
	}

	var appointments []*domain.Appointment
	for _, source := range []struct {
		name   string
		lister AppointmentLister
	}{
		{"primary", uc.primary},
		{"legacy", uc.legacy},
	} {
		found, err := source.lister.List(ctx, filter)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: %s store failed for service=%s, date=%s: %v",
				source.name, req.ServiceName, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %s: %v", ErrAvailabilityCheckFailed, source.name, err)
		}
		appointments = append(appointments, found...)
	}

	// 7. Считаем свободные места для каждого слота
	resp.Slots = calculateAvailableSpots(slotTimes, req.ServiceName, date, appointments)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s",
		len(resp.Slots), req.ServiceName, date.Format(domain.DateFormat))

	return resp, nil
}
