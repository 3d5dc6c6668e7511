package get_available_slots

import (
	"context"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// CalendarGateway чтение занятости внешнего календаря
type CalendarGateway interface {
	ListBusy(ctx context.Context, windowStart, windowEnd time.Time) ([]scheduling.BusyInterval, error)
}

// AppointmentRepository активные записи из локального хранилища
type AppointmentRepository interface {
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
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
