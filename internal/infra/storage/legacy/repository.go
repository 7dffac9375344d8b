package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
)

const bookingsPath = "bookings"

// Repository записи старого формата в узле bookings документного хранилища.
// Узел только дополняет основное хранилище: новые записи сюда не пишутся,
// но они учитываются при проверке вместимости и конфликтов.
type Repository struct {
	store rtdb.Store
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(store rtdb.Store) *Repository {
	return &Repository{store: store}
}

// List получает записи с фильтрацией. По дате и владельцу используется индексный запрос.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var (
		records []rtdb.Record
		err     error
	)

	switch {
	case filter.Date != nil:
		records, err = r.store.Query(ctx, bookingsPath, "date", filter.Date.Format(domain.DateFormat))
	case filter.OwnerID != nil:
		records, err = r.queryByOwner(ctx, *filter.OwnerID)
	default:
		var raw []byte
		raw, err = r.store.Get(ctx, bookingsPath)
		if err == nil {
			records, err = rtdb.Children(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrStore, err)
	}

	appointments := make([]*domain.Appointment, 0, len(records))
	for _, record := range records {
		fields, err := rtdb.DecodeFields(record.Value)
		if err != nil {
			continue
		}
		appointment, ok := decodeBooking(record.Key, fields)
		if !ok || !filter.Matches(appointment) {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

// queryByOwner ищет записи владельца по обоим вариантам поля (ownerId и userId)
func (r *Repository) queryByOwner(ctx context.Context, ownerID string) ([]rtdb.Record, error) {
	seen := make(map[string]struct{})
	var records []rtdb.Record
	for _, field := range []string{"ownerId", "userId"} {
		found, err := r.store.Query(ctx, bookingsPath, field, ownerID)
		if err != nil {
			return nil, err
		}
		for _, record := range found {
			if _, ok := seen[record.Key]; ok {
				continue
			}
			seen[record.Key] = struct{}{}
			records = append(records, record)
		}
	}
	return records, nil
}

// GetByID получает запись по ключу
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	raw, err := r.store.Get(ctx, rtdb.Join(bookingsPath, id))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrStore, err)
	}
	if raw == nil {
		return nil, ErrBookingNotFound
	}
	fields, err := rtdb.DecodeFields(raw)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	appointment, ok := decodeBooking(id, fields)
	if !ok {
		return nil, ErrBookingNotFound
	}
	return appointment, nil
}

// Reschedule переносит запись на новую дату и время
func (r *Repository) Reschedule(ctx context.Context, id string, date time.Time, slotTime string) error {
	return r.update(ctx, id, map[string]interface{}{
		"date":      date.Format(domain.DateFormat),
		"time":      slotTime,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":    string(status),
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

// Cancel отменяет запись
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	fields := map[string]interface{}{
		"status":      string(domain.StatusCancelled),
		"cancelledAt": now,
		"updatedAt":   now,
	}
	if reason != nil {
		fields["cancellationReason"] = *reason
	}
	return r.update(ctx, id, fields)
}

func (r *Repository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	raw, err := r.store.Get(ctx, rtdb.Join(bookingsPath, id))
	if err != nil {
		return fmt.Errorf("%w: update: %v", ErrStore, err)
	}
	if raw == nil {
		return ErrBookingNotFound
	}
	if err := r.store.Update(ctx, rtdb.Join(bookingsPath, id), fields); err != nil {
		return fmt.Errorf("%w: update: %v", ErrStore, err)
	}
	return nil
}

// decodeBooking приводит старую запись к domain.Appointment.
// Время слота приводится к HH:MM или HalfDay/FullDay.
// Записи без даты пропускаются. Неизвестный статус считается активным.
func decodeBooking(id string, f rtdb.Fields) (*domain.Appointment, bool) {
	date, ok := parseDate(f.String("date", "appointmentDate"))
	if !ok {
		return nil, false
	}

	a := &domain.Appointment{
		ID:     id,
		Source: domain.SourceLegacy,
	}
	a.Date = date
	a.Time = f.String("time", "appointmentTime")
	if slotTime, ok := domain.ParseSlotTime(a.Time); ok {
		a.Time = slotTime
	}
	a.ServiceName = f.String("serviceName", "service")
	a.ServiceID = f.String("serviceId")
	a.PetID = f.String("petId")
	a.PetName = f.String("petName", "pet")
	a.OwnerID = f.String("ownerId", "userId")
	a.AddonIDs = f.Strings("addonIds", "addons")

	if category, ok := domain.ParseCategory(f.String("serviceCategory", "category")); ok {
		a.ServiceCategory = category
	}
	if species, ok := domain.ParseSpecies(f.String("species")); ok {
		a.Species = species
	}
	if size, ok := domain.ParseSizeTier(f.String("size")); ok {
		a.Size = &size
	}
	if end, ok := parseDate(f.String("endDate")); ok {
		a.EndDate = &end
	}
	if nights, ok := f.Number("nights"); ok {
		n := int(nights)
		a.Nights = &n
	}

	a.Status = domain.StatusScheduled
	if status, ok := domain.ParseAppointmentStatus(f.String("status")); ok {
		a.Status = status
	}

	a.BaseAmount, _ = f.Number("baseAmount", "price", "amount")
	a.AddonAmount, _ = f.Number("addonAmount")
	if total, ok := f.Number("totalAmount", "total"); ok {
		a.TotalAmount = total
	} else {
		a.TotalAmount = a.BaseAmount + a.AddonAmount
	}

	if notes := f.String("notes"); notes != "" {
		a.Notes = &notes
	}
	if reason := f.String("cancellationReason"); reason != "" {
		a.CancellationReason = &reason
	}
	if cancelledAt, ok := parseTimestamp(f, "cancelledAt"); ok {
		a.CancelledAt = &cancelledAt
	}
	a.CreatedAt, _ = parseTimestamp(f, "createdAt")
	a.UpdatedAt, _ = parseTimestamp(f, "updatedAt")

	return a, true
}

func parseDate(s string) (time.Time, bool) {
	if len(s) >= len(domain.DateFormat) {
		if t, err := time.Parse(domain.DateFormat, s[:len(domain.DateFormat)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseTimestamp принимает миллисекунды эпохи или RFC3339
func parseTimestamp(f rtdb.Fields, key string) (time.Time, bool) {
	v, ok := f.Lookup(key)
	if !ok {
		return time.Time{}, false
	}
	switch x := v.(type) {
	case float64:
		return time.UnixMilli(int64(x)).UTC(), true
	case string:
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
