package notifications

import (
	"context"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/integrations/mailer"
)

// Sender отправитель писем
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// EmailLogRepository журнал попыток отправки
type EmailLogRepository interface {
	Create(ctx context.Context, entry *domain.EmailLog) error
}

type Metrics interface {
	Notification(emailType, status string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
