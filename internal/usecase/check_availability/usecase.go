package check_availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	resultAvailable = "available"
	resultFull      = "full"
	resultExempt    = "exempt"
	resultFailed    = "failed"
)

// UseCase use case проверки доступности слота (service, date, time)
type UseCase struct {
	primary AppointmentLister
	legacy  AppointmentLister
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	primary AppointmentLister,
	legacy AppointmentLister,
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

// Execute считает активные записи на слот в обоих источниках.
// Слот свободен, пока записей меньше domain.MaxConcurrentBookings.
// Пансион не ограничен вместимостью: хранилища не опрашиваются.
// При ошибке хранилища возвращает Available=false и ErrAvailabilityCheckFailed.
//
// Если в ctx есть транзакция, выборка из основного хранилища блокирует строки слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.ServiceName) == "" || req.Date.IsZero() || strings.TrimSpace(req.Time) == "" {
		return nil, fmt.Errorf("%w: serviceName, date and time are required", ErrInvalidInput)
	}

	// Время сравнивается в каноническом виде: "9:00" -> "09:00", "Half Day" -> "HalfDay"
	slotTime, ok := domain.ParseSlotTime(req.Time)
	if !ok {
		return nil, fmt.Errorf("%w: time %q", ErrInvalidInput, req.Time)
	}

	date := domain.DateOnly(req.Date)
	slot := domain.SlotOccupancy{
		ServiceName: req.ServiceName,
		Date:        date,
		Time:        slotTime,
		Capacity:    domain.MaxConcurrentBookings,
	}

	if req.Category == domain.CategoryBoarding {
		slot.Exempt = true
		uc.metrics.ObserveAvailability(resultExempt)
		uc.logger.Info("CheckAvailability: boarding service=%s is exempt from capacity", req.ServiceName)
		return &Response{Available: true, Slot: slot}, nil
	}

	filter := domain.AppointmentsFilter{
		ServiceName: &req.ServiceName,
		Date:        &date,
		Time:        &slotTime,
	}

	count := 0
	for _, source := range []struct {
		name   string
		lister AppointmentLister
	}{
		{"primary", uc.primary},
		{"legacy", uc.legacy},
	} {
		appointments, err := source.lister.List(ctx, filter)
		if err != nil {
			uc.metrics.ObserveAvailability(resultFailed)
			uc.logger.Error("CheckAvailability: %s store failed for service=%s, date=%s, time=%s: %v",
				source.name, req.ServiceName, date.Format(domain.DateFormat), slotTime, err)
			return &Response{Available: false, Slot: slot}, fmt.Errorf("%w: %s: %v", ErrAvailabilityCheckFailed, source.name, err)
		}
		for _, a := range appointments {
			if a.OccupiesSlot(req.ServiceName, date, slotTime) {
				count++
			}
		}
	}

	slot.Booked = count
	available := !slot.IsFull()

	if available {
		uc.metrics.ObserveAvailability(resultAvailable)
	} else {
		uc.metrics.ObserveAvailability(resultFull)
	}

	uc.logger.Info("CheckAvailability: service=%s, date=%s, time=%s, %d/%d spots taken",
		req.ServiceName, date.Format(domain.DateFormat), slotTime, count, slot.Capacity)

	return &Response{Available: available, Slot: slot}, nil
}
