package create_appointment

import (
	"context"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/infra/locker"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// CalendarGateway интерфейс внешнего календаря
type CalendarGateway interface {
	ListBusy(ctx context.Context, windowStart, windowEnd time.Time) ([]scheduling.BusyInterval, error)
	InsertEvent(ctx context.Context, appt *domain.Appointment) (string, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// Locker блокировка календарного дня на время проверки и записи
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// Notifier уведомления клиента и администратора о новой записи
type Notifier interface {
	NotifyBooked(ctx context.Context, appt *domain.Appointment) error
}

type Metrics interface {
	AppointmentCreated(serviceType string)
	OrphanedCalendarEvent()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
