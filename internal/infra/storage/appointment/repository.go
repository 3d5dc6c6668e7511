package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation = "23P01"
	pqInvalidTextRepr    = "22P02"
)

var columns = []string{
	"id",
	"contact_name",
	"parent_name",
	"email",
	"phone",
	"service_type",
	"course",
	"notes",
	"start_time",
	"end_time",
	"status",
	"external_event_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на консультации
type Repository struct {
	db          DBExecutor
	environment string
}

// NewRepository создает новый экземпляр репозитория; environment пишется в каждую новую запись
func NewRepository(db DBExecutor, environment string) *Repository {
	return &Repository{db: db, environment: environment}
}

// Create сохраняет новую запись
// Пересечение с другой активной записью отсекается ограничением БД и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"contact_name",
			"parent_name",
			"email",
			"phone",
			"service_type",
			"course",
			"notes",
			"start_time",
			"end_time",
			"status",
			"external_event_id",
			"environment",
		).
		Values(
			appt.ID,
			appt.ContactName,
			appt.ParentName,
			appt.Email,
			appt.Phone,
			appt.ServiceType,
			appt.Course,
			appt.Notes,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.ExternalEventID,
			r.environment,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return nil, fmt.Errorf("%w: %s", ErrOverlap, pqErr.Message)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись по ID; некорректный UUID трактуется как отсутствующая запись
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.ContactName,
		&appt.ParentName,
		&appt.Email,
		&appt.Phone,
		&appt.ServiceType,
		&appt.Course,
		&appt.Notes,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.ExternalEventID,
		&appt.CancelledAt,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepr {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &appt, nil
}

// MarkCancelled переводит активную запись в статус cancelled
// Возвращает false, если запись уже была отменена (повторная отмена ничего не меняет)
func (r *Repository) MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.StatusScheduled}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListScheduledBetween активные записи, пересекающиеся с [from, to), по возрастанию начала
func (r *Repository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		err := rows.Scan(
			&appt.ID,
			&appt.ContactName,
			&appt.ParentName,
			&appt.Email,
			&appt.Phone,
			&appt.ServiceType,
			&appt.Course,
			&appt.Notes,
			&appt.StartTime,
			&appt.EndTime,
			&appt.Status,
			&appt.ExternalEventID,
			&appt.CancelledAt,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
