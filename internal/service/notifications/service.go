package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/integrations/mailer"
	"github.com/collegeprep/CPS-AppointmentService/pkg/ptr"
)

// Service отправка уведомлений о записях
// Каждая попытка отправки пишется в email_logs (SENT/FAILED); ошибки не прерывают сценарий записи
type Service struct {
	sender        Sender
	logs          EmailLogRepository
	metrics       Metrics
	adminEmail    string
	subjectPrefix string
	loc           *time.Location
	log           Logger
}

// NewService создает сервис уведомлений; sender == nil отключает отправку (SMTP не настроен)
func NewService(sender Sender, logs EmailLogRepository, metrics Metrics, cfg Config, log Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		sender:        sender,
		logs:          logs,
		metrics:       metrics,
		adminEmail:    cfg.AdminEmail,
		subjectPrefix: cfg.SubjectPrefix,
		loc:           cfg.Location,
		log:           log,
	}
}

// NotifyBooked подтверждение клиенту и уведомление администратору
func (s *Service) NotifyBooked(ctx context.Context, appt *domain.Appointment) error {
	subject, body := s.confirmationMessage(appt)
	errs := []error{s.deliver(ctx, appt, domain.EmailConfirmation, appt.Email, subject, body)}

	if s.adminEmail != "" {
		subject, body = s.adminMessage(appt)
		errs = append(errs, s.deliver(ctx, appt, domain.EmailAdminNotification, s.adminEmail, subject, body))
	}

	return errors.Join(errs...)
}

// NotifyCancelled уведомление клиента об отмене
func (s *Service) NotifyCancelled(ctx context.Context, appt *domain.Appointment) error {
	subject, body := s.cancellationMessage(appt)
	return s.deliver(ctx, appt, domain.EmailCancellation, appt.Email, subject, body)
}

func (s *Service) deliver(ctx context.Context, appt *domain.Appointment, emailType domain.EmailType, to, subject, body string) error {
	if s.sender == nil {
		s.log.Info("Notifications: sending disabled, skip %s for appointment id=%s", emailType, appt.ID)
		return nil
	}

	entry := &domain.EmailLog{
		AppointmentID: ptr.NilIfEmpty(appt.ID),
		To:            to,
		Subject:       subject,
		Type:          emailType,
		Status:        domain.EmailSent,
	}

	sendErr := s.sender.Send(ctx, mailer.Message{To: to, Subject: subject, Body: body})
	if sendErr != nil {
		entry.Status = domain.EmailFailed
		entry.Error = ptr.Ptr(sendErr.Error())
		s.log.Warn("Notifications: failed to send %s to %s for appointment id=%s: %v", emailType, to, appt.ID, sendErr)
	} else {
		s.log.Info("Notifications: sent %s to %s for appointment id=%s", emailType, to, appt.ID)
	}
	s.metrics.Notification(string(emailType), string(entry.Status))

	// Запись в журнал не должна зависеть от отмены запроса клиентом
	if err := s.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Error("Notifications: failed to write email log (%s to %s, status=%s): %v", emailType, to, entry.Status, err)
	}

	if sendErr != nil {
		return fmt.Errorf("%w: %s to %s: %v", ErrNotificationFailed, emailType, to, sendErr)
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) Notification(string, string) {}
