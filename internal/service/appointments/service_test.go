package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	appointmentRepo "github.com/collegeprep/CPS-AppointmentService/internal/infra/storage/appointment"
	"github.com/collegeprep/CPS-AppointmentService/pkg/ptr"
)

var testLoc = time.FixedZone("EST", -5*60*60)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	items     map[string]*domain.Appointment
	getErr    error
	cancelErr error
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	appt, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeRepo) MarkCancelled(_ context.Context, id string, at time.Time) (bool, error) {
	if r.cancelErr != nil {
		return false, r.cancelErr
	}
	appt, ok := r.items[id]
	if !ok || appt.Status != domain.StatusScheduled {
		return false, nil
	}
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &at
	return true, nil
}

type fakeCalendar struct {
	deleted []string
	err     error
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	if c.err != nil {
		return c.err
	}
	c.deleted = append(c.deleted, eventID)
	return nil
}

type fakeNotifier struct {
	cancelled []string
	err       error
}

func (n *fakeNotifier) NotifyCancelled(_ context.Context, appt *domain.Appointment) error {
	n.cancelled = append(n.cancelled, appt.ID)
	return n.err
}

type fakeMetrics struct{ cancelled int }

func (m *fakeMetrics) AppointmentCancelled() { m.cancelled++ }

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	calendar *fakeCalendar
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newFixture() *fixture {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, testLoc)
	repo := &fakeRepo{items: map[string]*domain.Appointment{
		"appt-1": {
			ID:              "appt-1",
			ContactName:     "Jane Doe",
			Email:           "jane@example.com",
			Phone:           "555-0100",
			ServiceType:     domain.ServiceConsultation,
			StartTime:       start,
			EndTime:         start.Add(30 * time.Minute),
			Status:          domain.StatusScheduled,
			ExternalEventID: ptr.Ptr("evt-1"),
		},
		"appt-no-event": {
			ID:          "appt-no-event",
			ServiceType: domain.ServiceConsultation,
			StartTime:   start.Add(2 * time.Hour),
			EndTime:     start.Add(150 * time.Minute),
			Status:      domain.StatusScheduled,
		},
	}}

	f := &fixture{
		repo:     repo,
		calendar: &fakeCalendar{},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}
	f.svc = NewService(f.repo, f.calendar, f.notifier, f.metrics, testLoc, nopLogger{})
	f.svc.timeProvider = fixedTime{now: time.Date(2026, 10, 17, 12, 0, 0, 0, testLoc)}
	return f
}

func TestService_Cancel(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.False(t, resp.AlreadyCancelled)

	assert.Equal(t, []string{"evt-1"}, f.calendar.deleted)
	assert.Equal(t, domain.StatusCancelled, f.repo.items["appt-1"].Status)
	assert.Equal(t, []string{"appt-1"}, f.notifier.cancelled)
	assert.Equal(t, 1, f.metrics.cancelled)
}

func TestService_Cancel_Twice(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	cancelledAt := *f.repo.items["appt-1"].CancelledAt

	resp, err := f.svc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)

	// Второй вызов ничего не меняет
	assert.Len(t, f.calendar.deleted, 1)
	assert.Len(t, f.notifier.cancelled, 1)
	assert.Equal(t, 1, f.metrics.cancelled)
	assert.Equal(t, cancelledAt, *f.repo.items["appt-1"].CancelledAt)
}

func TestService_Cancel_WithoutCalendarEvent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), "appt-no-event")
	require.NoError(t, err)
	assert.Empty(t, f.calendar.deleted)
	assert.Equal(t, domain.StatusCancelled, f.repo.items["appt-no-event"].Status)
}

func TestService_Cancel_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Cancel_CalendarFailureKeepsRecord(t *testing.T) {
	f := newFixture()
	f.calendar.err = errors.New("googlecalendar: calendar write failed")

	_, err := f.svc.Cancel(context.Background(), "appt-1")
	assert.ErrorIs(t, err, ErrCalendarWriteFailed)
	assert.Equal(t, domain.StatusScheduled, f.repo.items["appt-1"].Status)
	assert.Empty(t, f.notifier.cancelled)
	assert.Equal(t, 0, f.metrics.cancelled)
}

func TestService_Cancel_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	_, err := f.svc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.repo.items["appt-1"].Status)
}

func TestService_Cancel_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.cancelErr = errors.New("db down")

	_, err := f.svc.Cancel(context.Background(), "appt-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetByID(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.ID)
	assert.Equal(t, "2026-10-19", resp.Date)
	assert.Equal(t, "10:00 AM", resp.TimeSlot)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "consultation", resp.ServiceType)

	_, err = f.svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	f.repo.getErr = errors.New("db down")
	_, err = f.svc.GetByID(context.Background(), "appt-1")
	assert.ErrorIs(t, err, ErrInternal)
}
