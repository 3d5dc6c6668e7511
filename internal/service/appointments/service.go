package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "github.com/collegeprep/CPS-AppointmentService/internal/infra/storage/appointment"
	"github.com/collegeprep/CPS-AppointmentService/internal/service/appointments/models"
)

// Service просмотр и отмена записей
type Service struct {
	repo         AppointmentRepository
	calendar     CalendarGateway
	notifier     Notifier
	metrics      Metrics
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	calendar CalendarGateway,
	notifier Notifier,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		repo:         repo,
		calendar:     calendar,
		notifier:     notifier,
		metrics:      metrics,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt, s.loc), nil
}

// Cancel отменяет запись
// Повторная отмена не ошибка и ничего не меняет.
// Событие календаря удаляется до смены статуса: при ошибке календаря запись остается активной
func (s *Service) Cancel(ctx context.Context, id string) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	// 1. Получаем запись
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// 2. Уже отменена - ничего не делаем
	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%s already cancelled", id)
		return &models.CancelResponse{ID: id, AlreadyCancelled: true}, nil
	}

	// 3. Удаляем событие календаря (отсутствующее событие считается удаленным)
	if appt.HasCalendarEvent() {
		if err := s.calendar.DeleteEvent(ctx, *appt.ExternalEventID); err != nil {
			s.logger.Error("Cancel: failed to delete calendar event id=%s for appointment id=%s: %v",
				*appt.ExternalEventID, id, err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarWriteFailed, err)
		}
	}

	// 4. Меняем статус
	now := s.timeProvider.Now()
	changed, err := s.repo.MarkCancelled(ctx, id, now)
	if err != nil {
		s.logger.Error("Cancel: failed to mark appointment id=%s cancelled (calendar event already removed): %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if !changed {
		// Параллельная отмена успела раньше
		s.logger.Info("Cancel: appointment id=%s was cancelled concurrently", id)
		return &models.CancelResponse{ID: id, AlreadyCancelled: true}, nil
	}

	s.metrics.AppointmentCancelled()
	s.logger.Info("Cancel: successfully cancelled appointment id=%s service=%s start=%s",
		id, appt.ServiceType, appt.StartTime.Format(time.RFC3339))

	// 5. Уведомление (не влияет на результат)
	if err := s.notifier.NotifyCancelled(ctx, appt); err != nil {
		s.logger.Warn("Cancel: cancellation notice for appointment id=%s not delivered: %v", id, err)
	}

	return &models.CancelResponse{ID: id}, nil
}

type noopMetrics struct{}

func (noopMetrics) AppointmentCancelled() {}
