package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/integrations/mailer"
	"github.com/collegeprep/CPS-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail map[string]error
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[msg.To]; err != nil {
		return err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeLogs struct {
	entries []*domain.EmailLog
	err     error
}

func (l *fakeLogs) Create(_ context.Context, entry *domain.EmailLog) error {
	l.entries = append(l.entries, entry)
	return l.err
}

type fakeMetrics struct {
	calls []string
}

func (m *fakeMetrics) Notification(emailType, status string) {
	m.calls = append(m.calls, emailType+":"+status)
}

var testLoc = time.FixedZone("EST", -5*60*60)

func testAppointment() *domain.Appointment {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, testLoc)
	return &domain.Appointment{
		ID:              "appt-1",
		ContactName:     "Jane Doe",
		ParentName:      ptr.Ptr("John Doe"),
		Email:           "jane@example.com",
		Phone:           "555-0100",
		ServiceType:     domain.ServiceSATPrep,
		Course:          ptr.Ptr("SAT Math"),
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          domain.StatusScheduled,
		ExternalEventID: ptr.Ptr("evt-1"),
	}
}

func TestService_NotifyBooked(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogs{}
	m := &fakeMetrics{}
	svc := NewService(sender, logs, m, Config{
		AdminEmail:    "admin@example.com",
		SubjectPrefix: "[DEV] ",
		Location:      testLoc,
	}, nopLogger{})

	require.NoError(t, svc.NotifyBooked(context.Background(), testAppointment()))

	require.Len(t, sender.sent, 2)
	client := sender.sent[0]
	assert.Equal(t, "jane@example.com", client.To)
	assert.Equal(t, "[DEV] Your appointment is confirmed", client.Subject)
	assert.Contains(t, client.Body, "Monday, October 19, 2026 at 10:00 AM EST")
	assert.Contains(t, client.Body, "Duration: 60 minutes")

	admin := sender.sent[1]
	assert.Equal(t, "admin@example.com", admin.To)
	assert.Equal(t, "[DEV] New appointment: sat-prep - Jane Doe", admin.Subject)
	assert.Contains(t, admin.Body, "Parent: John Doe")
	assert.Contains(t, admin.Body, "Calendar event: evt-1")

	require.Len(t, logs.entries, 2)
	assert.Equal(t, domain.EmailConfirmation, logs.entries[0].Type)
	assert.Equal(t, domain.EmailSent, logs.entries[0].Status)
	assert.Equal(t, "appt-1", ptr.Value(logs.entries[0].AppointmentID))
	assert.Equal(t, domain.EmailAdminNotification, logs.entries[1].Type)
	assert.Equal(t, []string{"appointment_confirmation:SENT", "admin_notification:SENT"}, m.calls)
}

func TestService_NotifyBooked_SendFailureIsLogged(t *testing.T) {
	sender := &fakeSender{fail: map[string]error{"jane@example.com": errors.New("550 mailbox unavailable")}}
	logs := &fakeLogs{}
	svc := NewService(sender, logs, nil, Config{AdminEmail: "admin@example.com"}, nopLogger{})

	err := svc.NotifyBooked(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrNotificationFailed)

	// Администратор все равно уведомлен
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "admin@example.com", sender.sent[0].To)

	require.Len(t, logs.entries, 2)
	assert.Equal(t, domain.EmailFailed, logs.entries[0].Status)
	assert.Equal(t, "550 mailbox unavailable", ptr.Value(logs.entries[0].Error))
	assert.Equal(t, domain.EmailSent, logs.entries[1].Status)
}

func TestService_NotifyCancelled(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogs{err: errors.New("db down")}
	svc := NewService(sender, logs, nil, Config{Location: testLoc}, nopLogger{})

	// Ошибка журнала не влияет на результат
	require.NoError(t, svc.NotifyCancelled(context.Background(), testAppointment()))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Your appointment has been cancelled", sender.sent[0].Subject)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, domain.EmailCancellation, logs.entries[0].Type)
}

func TestService_NoSender(t *testing.T) {
	logs := &fakeLogs{}
	svc := NewService(nil, logs, nil, Config{AdminEmail: "admin@example.com"}, nopLogger{})

	require.NoError(t, svc.NotifyBooked(context.Background(), testAppointment()))
	assert.Empty(t, logs.entries)
}
