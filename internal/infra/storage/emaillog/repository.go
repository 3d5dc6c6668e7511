package emaillog

import (
	"context"
	"fmt"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/pkg/psqlbuilder"
)

// Repository журнал попыток отправки писем (только добавление)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись о попытке отправки
func (r *Repository) Create(ctx context.Context, entry *domain.EmailLog) error {
	query, args, err := psqlbuilder.Insert("email_logs").
		Columns("appointment_id", "recipient", "subject", "type", "status", "error").
		Values(entry.AppointmentID, entry.To, entry.Subject, entry.Type, entry.Status, entry.Error).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
