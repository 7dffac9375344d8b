package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"owner_id",
	"pet_id",
	"pet_name",
	"service_category",
	"service_id",
	"service_name",
	"species",
	"size",
	"appointment_date",
	"appointment_time",
	"end_date",
	"nights",
	"addon_ids",
	"base_amount",
	"addon_amount",
	"total_amount",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository основное хранилище записей (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись и возвращает её с присвоенным ID.
// Если в контексте передана транзакция, вставка выполняется в ней.
func (r *Repository) Create(ctx context.Context, req *domain.AppointmentRequest) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	appointment := &domain.Appointment{
		ID:                 uuid.NewString(),
		Source:             domain.SourcePrimary,
		AppointmentRequest: *req,
	}

	addonIDs := req.AddonIDs
	if addonIDs == nil {
		addonIDs = []string{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"owner_id",
			"pet_id",
			"pet_name",
			"service_category",
			"service_id",
			"service_name",
			"species",
			"size",
			"appointment_date",
			"appointment_time",
			"end_date",
			"nights",
			"addon_ids",
			"base_amount",
			"addon_amount",
			"total_amount",
			"status",
			"notes",
		).
		Values(
			appointment.ID,
			req.OwnerID,
			req.PetID,
			req.PetName,
			string(req.ServiceCategory),
			req.ServiceID,
			req.ServiceName,
			string(req.Species),
			nullableSize(req.Size),
			req.Date,
			req.Time,
			req.EndDate,
			req.Nights,
			pq.Array(addonIDs),
			req.BaseAmount,
			req.AddonAmount,
			req.TotalAmount,
			string(req.Status),
			req.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// List получает записи с фильтрацией.
// Без Status и IncludeTerminal завершённые и отменённые записи исключаются.
// Для выборки по конкретной дате внутри транзакции строки блокируются (FOR UPDATE),
// чтобы повторная проверка вместимости и вставка шли атомарно.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.ServiceName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_name": *filter.ServiceName})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": domain.DateOnly(*filter.Date)})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(*filter.EndDate)})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_time": *filter.Time})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeTerminal {
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("appointment_time ASC", "created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "appointment_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Reschedule переносит запись на новую дату и время
func (r *Repository) Reschedule(ctx context.Context, id string, date time.Time, slotTime string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("appointment_date", domain.DateOnly(date)).
		Set("appointment_time", slotTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Reschedule", query, args)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет запись с необязательной причиной
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Cancel", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appointment          domain.Appointment
		category, species    string
		status               string
		size                 sql.NullString
		endDate, cancelledAt sql.NullTime
		createdAt, updatedAt sql.NullTime
		nights               sql.NullInt64
		notes, reason        sql.NullString
		addonIDs             pq.StringArray
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.OwnerID,
		&appointment.PetID,
		&appointment.PetName,
		&category,
		&appointment.ServiceID,
		&appointment.ServiceName,
		&species,
		&size,
		&appointment.Date,
		&appointment.Time,
		&endDate,
		&nights,
		&addonIDs,
		&appointment.BaseAmount,
		&appointment.AddonAmount,
		&appointment.TotalAmount,
		&status,
		&notes,
		&reason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Source = domain.SourcePrimary
	appointment.ServiceCategory = domain.Category(category)
	appointment.Species = domain.Species(species)
	appointment.Status = domain.AppointmentStatus(status)
	appointment.AddonIDs = []string(addonIDs)

	if size.Valid {
		tier := domain.SizeTier(size.String)
		appointment.Size = &tier
	}
	if endDate.Valid {
		appointment.EndDate = &endDate.Time
	}
	if nights.Valid {
		n := int(nights.Int64)
		appointment.Nights = &n
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	if reason.Valid {
		appointment.CancellationReason = &reason.String
	}
	if cancelledAt.Valid {
		appointment.CancelledAt = &cancelledAt.Time
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

func nullableSize(size *domain.SizeTier) interface{} {
	if size == nil {
		return nil
	}
	return string(*size)
}
