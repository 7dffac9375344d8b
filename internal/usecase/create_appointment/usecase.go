package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/pricing"
	"github.com/m04kA/SMC-PetCareService/internal/service/stay"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

const (
	outcomeCreated  = "created"
	outcomeSlotFull = "slot_full"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// UseCase use case создания записи: сборка заявки, повторная проверка слота и сохранение
type UseCase struct {
	petRepo         PetRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	availability    AvailabilityChecker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	advanceDays     int
}

// NewUseCase создает новый экземпляр use case.
// advanceDays - на сколько дней вперёд можно записаться (0 - без ограничения).
func NewUseCase(
	petRepo PetRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	advanceDays int,
) *UseCase {
	return &UseCase{
		petRepo:         petRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		availability:    availability,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		advanceDays:     advanceDays,
	}
}

// assembled заявка с ценой, готовая к сохранению
type assembled struct {
	request   *domain.AppointmentRequest
	unitLabel string
}

// Assemble собирает заявку на запись без сохранения.
// Проверки идут по порядку: обязательные поля, размер для тарифной услуги,
// дата выезда для "7-Days+". Вместимость слота проверяет Execute.
func (uc *UseCase) Assemble(ctx context.Context, req *Request) (*domain.AppointmentRequest, error) {
	result, err := uc.assemble(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.request, nil
}

// Execute собирает заявку, повторно проверяет доступность слота и сохраняет запись.
// Проверка и вставка выполняются в одной сериализуемой транзакции.
// При любой ошибке ничего не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: owner=%s, pet=%s, category=%s, service=%s, time=%s",
		req.OwnerID, req.PetID, req.Category, req.ServiceID, req.Time)

	// 1-3. Собираем заявку
	result, err := uc.assemble(ctx, req)
	if err != nil {
		uc.metrics.ObserveBooking(string(req.Category), outcomeRejected)
		return nil, err
	}
	request := result.request

	var created *domain.Appointment

	// 4. Повторная проверка слота и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем вместимость слота (строки основного хранилища блокируются)
		check, err := uc.availability.Execute(txCtx, &check_availability.Request{
			ServiceName: request.ServiceName,
			Category:    request.ServiceCategory,
			Date:        request.Date,
			Time:        request.Time,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAvailabilityCheckFailed) {
				uc.logger.Error("CreateAppointment: availability check failed: %v", err)
				return fmt.Errorf("%w: %v", ErrAvailabilityCheckFailed, err)
			}
			uc.logger.Error("CreateAppointment: availability check error: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("CreateAppointment: slot is full, %d/%d spots taken",
				check.Slot.Booked, check.Slot.Capacity)
			return ErrSlotFull
		}

		// 4.2. Сохраняем запись
		appointment, err := uc.appointmentRepo.Create(txCtx, request)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				uc.logger.Warn("CreateAppointment: concurrent booking on the same slot: %v", err)
				return fmt.Errorf("%w: concurrent booking: %v", ErrAvailabilityCheckFailed, err)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = appointment
		return nil
	})

	if err != nil {
		outcome := outcomeFailed
		if errors.Is(err, domain.ErrSlotFull) {
			outcome = outcomeSlotFull
		}
		uc.metrics.ObserveBooking(string(request.ServiceCategory), outcome)

		// Параллельная запись на тот же слот: Postgres отменил фиксацию (SQLSTATE 40001)
		if txmanager.IsSerializationFailure(err) && !errors.Is(err, domain.ErrAvailabilityCheckFailed) {
			uc.logger.Warn("CreateAppointment: transaction aborted by a concurrent booking: %v", err)
			return nil, fmt.Errorf("%w: concurrent booking: %v", ErrAvailabilityCheckFailed, err)
		}

		// Ошибки начала или фиксации транзакции
		if !errors.Is(err, domain.ErrSlotFull) && !errors.Is(err, domain.ErrAvailabilityCheckFailed) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(string(created.ServiceCategory), outcomeCreated)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s, total=%.2f",
		created.ID, created.TotalAmount)

	return &Response{Appointment: created, UnitLabel: result.unitLabel}, nil
}

func (uc *UseCase) assemble(ctx context.Context, req *Request) (*assembled, error) {
	// 1. Обязательные поля
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(*req.Date, uc.timeProvider.Now(), uc.advanceDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	slotTime, err := normalizeTime(req.Category, req.Time)
	if err != nil {
		uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
		return nil, err
	}

	// 1.1. Питомец владельца
	pet, err := uc.petRepo.GetByID(ctx, req.OwnerID, req.PetID)
	if err != nil {
		if errors.Is(err, domain.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: pet=%s not found for owner=%s", req.PetID, req.OwnerID)
			return nil, ErrPetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get pet=%s: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}

	// 1.2. Услуга каталога для вида питомца
	entry, err := uc.catalogRepo.GetEntry(ctx, req.Category, pet.Species, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service %s/%s/%s not found", req.Category, pet.Species, req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 2. Размер обязателен для тарифной услуги
	if entry.RequiresSizeTier(pet.Species) {
		if req.Size == nil {
			uc.logger.Warn("CreateAppointment: size tier missing for tiered service=%s", entry.ID)
			return nil, fmt.Errorf("%w: service %q", ErrMissingSizeTier, entry.Name)
		}
		if _, ok := entry.TierPrice(*req.Size); !ok {
			uc.logger.Warn("CreateAppointment: size tier %s has no price for service=%s", *req.Size, entry.ID)
			return nil, fmt.Errorf("%w: no price for size %s", ErrMissingSizeTier, *req.Size)
		}
	}

	// 3. Период пансиона
	var opts pricing.Options
	request := &domain.AppointmentRequest{
		PetID:           pet.ID,
		PetName:         pet.Name,
		OwnerID:         req.OwnerID,
		ServiceCategory: entry.Category,
		ServiceID:       entry.ID,
		ServiceName:     entry.Name,
		Species:         pet.Species,
		Size:            req.Size,
		Date:            domain.DateOnly(*req.Date),
		Time:            slotTime,
		Status:          domain.StatusScheduled,
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		notes := strings.TrimSpace(*req.Notes)
		request.Notes = &notes
	}

	if entry.Category == domain.CategoryBoarding {
		pkg := domain.BoardingPackage("")
		if entry.BoardingPackage != nil {
			pkg = *entry.BoardingPackage
		}
		stayRange, err := stay.DeriveEndDate(pkg, req.Date, req.EndDate)
		if err != nil {
			uc.logger.Warn("CreateAppointment: invalid boarding range: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
		if stayRange.EndDate == nil {
			uc.logger.Warn("CreateAppointment: end date missing for package=%s", pkg)
			return nil, fmt.Errorf("%w: end date is required for %s", ErrInvalidDateRange, pkg)
		}
		request.EndDate = stayRange.EndDate
		request.Nights = stayRange.Nights
		opts.Nights = stayRange.Nights
	}

	// Цена базовой услуги
	quote, err := pricing.ResolvePriceWithOptions(entry, pet.Species, req.Size, opts)
	if err != nil {
		uc.logger.Error("CreateAppointment: catalog entry %s/%s/%s has invalid price: %v",
			entry.Category, entry.Species, entry.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	if quote.StartingFrom {
		return nil, fmt.Errorf("%w: service %q", ErrMissingSizeTier, entry.Name)
	}

	// Доп. услуги и итоговые суммы
	addonIDs := domain.UniqueIDs(req.AddonIDs)
	addons, err := uc.catalogRepo.GetAddons(ctx, addonIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAddonNotFound) {
			uc.logger.Warn("CreateAppointment: addon not found: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		uc.logger.Error("CreateAppointment: failed to get addons: %v", err)
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	amounts, err := pricing.Totals(quote.Amount, addons)
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid addon price: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}

	request.AddonIDs = addonIDs
	request.BaseAmount = amounts.Base
	request.AddonAmount = amounts.Addon
	request.TotalAmount = amounts.Total

	uc.logger.Info("CreateAppointment: assembled service=%s, base=%.2f, addons=%.2f, total=%.2f",
		request.ServiceName, request.BaseAmount, request.AddonAmount, request.TotalAmount)

	return &assembled{request: request, unitLabel: quote.UnitLabel}, nil
}
