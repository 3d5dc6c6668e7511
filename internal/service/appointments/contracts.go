package appointments

import (
	"context"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error)
}

// CalendarGateway удаление события во внешнем календаре
type CalendarGateway interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// Notifier уведомление клиента об отмене
type Notifier interface {
	NotifyCancelled(ctx context.Context, appt *domain.Appointment) error
}

type Metrics interface {
	AppointmentCancelled()
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
