package emaillog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/pkg/ptr"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	created := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	entry := &domain.EmailLog{
		AppointmentID: ptr.Ptr("appt-1"),
		To:            "jane@example.com",
		Subject:       "Appointment confirmed",
		Type:          domain.EmailConfirmation,
		Status:        domain.EmailFailed,
		Error:         ptr.Ptr("smtp: connection refused"),
	}

	mock.ExpectQuery(`INSERT INTO email_logs \(appointment_id,recipient,subject,type,status,error\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) RETURNING id, created_at`).
		WithArgs("appt-1", "jane@example.com", "Appointment confirmed", domain.EmailConfirmation, domain.EmailFailed, "smtp: connection refused").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(7), entry.ID)
	assert.Equal(t, created, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO email_logs`).WillReturnError(errors.New("db down"))

	err = NewRepository(db).Create(context.Background(), &domain.EmailLog{To: "x@example.com"})
	assert.ErrorIs(t, err, ErrExecQuery)
}
