package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/infra/locker"
	appointmentRepo "github.com/collegeprep/CPS-AppointmentService/internal/infra/storage/appointment"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
	"github.com/collegeprep/CPS-AppointmentService/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	calendar        CalendarGateway
	appointmentRepo AppointmentRepository
	locker          Locker
	notifier        Notifier
	metrics         Metrics
	policy          *scheduling.Policy
	catalog         *scheduling.Catalog
	lockScope       string
	timeProvider    TimeProvider
	newID           func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// lockScope - префикс ключа блокировки дня (ID календаря)
func NewUseCase(
	calendar CalendarGateway,
	appointmentRepo AppointmentRepository,
	locker Locker,
	notifier Notifier,
	metrics Metrics,
	policy *scheduling.Policy,
	catalog *scheduling.Catalog,
	lockScope string,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		calendar:        calendar,
		appointmentRepo: appointmentRepo,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		policy:          policy,
		catalog:         catalog,
		lockScope:       lockScope,
		timeProvider:    &RealTimeProvider{},
		newID:           uuid.NewString,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Запись в календарь не идемпотентна, поэтому шаги не повторяются автоматически.
// После создания события любая ошибка логируется вместе с ID события для ручной сверки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: date=%s, timeSlot=%s, serviceType=%s",
		req.Date, req.TimeSlot, req.ServiceType)

	now := uc.timeProvider.Now()

	// 2. Дата
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), uc.policy.Location())
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}
	if !uc.policy.IsBookableDate(day, now) {
		uc.logger.Warn("CreateAppointment: date %s is not bookable", req.Date)
		return nil, fmt.Errorf("%w: %s is in the past, on a weekend or inside the lead time", ErrInvalidDate, req.Date)
	}

	// 3. Услуга
	serviceType, err := uc.catalog.Resolve(req.ServiceType)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unknown service type %q", req.ServiceType)
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, req.ServiceType)
	}
	duration, err := uc.catalog.Duration(serviceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownServiceType, err)
	}

	// 4. Время слота
	hour, minute, err := scheduling.ParseSlotTime(req.TimeSlot)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid time slot %q: %v", req.TimeSlot, err)
		return nil, &ValidationError{Fields: []string{fmt.Sprintf("timeSlot %q must look like \"9:00 AM\"", req.TimeSlot)}}
	}

	// 5. Границы записи
	start := uc.policy.At(day, hour, minute)
	end := start.Add(duration)

	// 6. Правила записи
	if reasons := uc.policyViolations(start, end, duration, now); len(reasons) > 0 {
		uc.logger.Warn("CreateAppointment: %s at %s is out of policy: %s",
			serviceType, start.Format(time.RFC3339), strings.Join(reasons, "; "))
		return nil, &PolicyError{Reasons: reasons}
	}

	// 7. Блокировка дня до сохранения записи
	acquired, err := uc.acquireDay(ctx, day)
	if err != nil {
		return nil, err
	}
	var releaseOnce sync.Once
	release := func() { releaseOnce.Do(acquired) }
	defer release()

	// 8. Повторная проверка занятости непосредственно перед записью
	if err := uc.checkConflicts(ctx, start, end); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ID:          uc.newID(),
		ContactName: strings.TrimSpace(req.ContactName),
		ParentName:  trimmedOrNil(req.ParentName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		ServiceType: serviceType,
		Course:      trimmedOrNil(req.Course),
		Notes:       trimmedOrNil(req.Notes),
		StartTime:   start,
		EndTime:     end,
		Status:      domain.StatusScheduled,
	}

	// 9. Событие в календаре; при ошибке запись не сохраняется
	eventID, err := uc.calendar.InsertEvent(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to insert calendar event for %s %s-%s: %v",
			serviceType, start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarWriteFailed, err)
	}
	appt.ExternalEventID = ptr.Ptr(eventID)

	// 10. Сохранение записи; событие уже создано, компенсации нет
	created, err := uc.appointmentRepo.Create(ctx, appt)
	// Уведомления идут уже без блокировки дня
	release()
	if err != nil {
		uc.metrics.OrphanedCalendarEvent()
		uc.logger.Error("CreateAppointment: ORPHANED calendar event: eventId=%s, serviceType=%s, start=%s, end=%s, contact=%s: %v",
			eventID, serviceType, start.Format(time.RFC3339), end.Format(time.RFC3339), appt.Email, err)

		if errors.Is(err, appointmentRepo.ErrOverlap) {
			return nil, fmt.Errorf("%w: overlaps a scheduled appointment", ErrSlotConflict)
		}
		return nil, fmt.Errorf("%w: calendar event %s was created: %v", ErrPersistenceFailed, eventID, err)
	}

	// 11. Метрики
	uc.metrics.AppointmentCreated(serviceType.String())
	uc.logger.Info("CreateAppointment: created appointment id=%s, eventId=%s, serviceType=%s, start=%s",
		created.ID, eventID, serviceType, start.Format(time.RFC3339))

	// 12. Уведомления не влияют на результат
	if uc.notifier != nil {
		if err := uc.notifier.NotifyBooked(ctx, created); err != nil {
			uc.logger.Warn("CreateAppointment: notifications for appointment id=%s failed: %v", created.ID, err)
		}
	}

	return &Response{
		AppointmentID:   created.ID,
		ExternalEventID: eventID,
	}, nil
}

// policyViolations собирает все причины отказа, а не только первую
func (uc *UseCase) policyViolations(start, end time.Time, duration time.Duration, now time.Time) []string {
	var reasons []string

	hours := uc.policy.Hours()
	if !uc.policy.IsWithinBusinessHours(start) {
		reasons = append(reasons, fmt.Sprintf("start %s is outside business hours %d:00-%d:00",
			scheduling.FormatSlotTime(start), hours.Start, hours.End))
	}
	if !uc.policy.EndsWithinBusinessHours(end) {
		reasons = append(reasons, fmt.Sprintf("end %s is after business hours end %d:00",
			scheduling.FormatSlotTime(end), hours.End))
	}
	if !start.Before(end) {
		reasons = append(reasons, "start must be before end")
	}

	tolerance := domain.DurationToleranceMinutes * time.Minute
	if diff := end.Sub(start) - duration; diff > tolerance || diff < -tolerance {
		reasons = append(reasons, fmt.Sprintf("duration %s does not match service duration %s", end.Sub(start), duration))
	}

	if !start.After(now) {
		reasons = append(reasons, fmt.Sprintf("start %s has already passed", scheduling.FormatSlotTime(start)))
	}

	return reasons
}

// acquireDay блокирует календарный день; недоступность хранилища блокировок не останавливает запись,
// от двойного бронирования тогда защищает ограничение БД
func (uc *UseCase) acquireDay(ctx context.Context, day time.Time) (locker.ReleaseFunc, error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf("%s:%s", uc.lockScope, day.Format(domain.DateFormat))
	release, err := uc.locker.Acquire(ctx, key)
	switch {
	case err == nil:
		return release, nil
	case errors.Is(err, locker.ErrLockTimeout):
		uc.logger.Warn("CreateAppointment: lock %s is busy: %v", key, err)
		return nil, fmt.Errorf("%w: another booking for this day is in progress", ErrSlotConflict)
	default:
		uc.logger.Warn("CreateAppointment: lock %s unavailable, proceeding without it: %v", key, err)
		return func() {}, nil
	}
}

// checkConflicts пересечение с событиями календаря и активными записями БД
func (uc *UseCase) checkConflicts(ctx context.Context, start, end time.Time) error {
	busy, err := uc.calendar.ListBusy(ctx, start, end)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to re-check busy intervals %s-%s: %v",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		return fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	if uc.appointmentRepo != nil {
		scheduled, err := uc.appointmentRepo.ListScheduledBetween(ctx, start, end)
		if err != nil {
			uc.logger.Warn("CreateAppointment: failed to load scheduled appointments, relying on calendar: %v", err)
		}
		for _, appt := range scheduled {
			busy = append(busy, scheduling.BusyInterval{Start: appt.StartTime, End: appt.EndTime})
		}
	}

	if scheduling.OverlapsAny(start, end, busy) {
		uc.logger.Warn("CreateAppointment: slot %s-%s overlaps %d busy interval(s)",
			start.Format(time.RFC3339), end.Format(time.RFC3339), len(busy))
		return fmt.Errorf("%w: %s", ErrSlotConflict, scheduling.FormatSlotTime(start))
	}

	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr.NilIfEmpty(strings.TrimSpace(*s))
}

type noopMetrics struct{}

func (noopMetrics) AppointmentCreated(string) {}
func (noopMetrics) OrphanedCalendarEvent()    {}
