package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	calendar           CalendarGateway
	appointmentRepo    AppointmentRepository
	policy             *scheduling.Policy
	catalog            *scheduling.Catalog
	generator          *scheduling.Generator
	defaultServiceType domain.ServiceType
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar CalendarGateway,
	appointmentRepo AppointmentRepository,
	policy *scheduling.Policy,
	catalog *scheduling.Catalog,
	generator *scheduling.Generator,
	defaultServiceType domain.ServiceType,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:           calendar,
		appointmentRepo:    appointmentRepo,
		policy:             policy,
		catalog:            catalog,
		generator:          generator,
		defaultServiceType: defaultServiceType,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Только чтение: при ошибке календаря запрос безопасно повторить
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, serviceType=%s", req.Date, req.ServiceType)

	now := uc.timeProvider.Now()

	// 1. Дата: формат, прошлое, выходные, lead time
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), uc.policy.Location())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}
	if !uc.policy.IsBookableDate(day, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is not bookable", req.Date)
		return nil, fmt.Errorf("%w: %s is in the past, on a weekend or inside the lead time", ErrInvalidDate, req.Date)
	}

	// 2. Услуга
	rawServiceType := req.ServiceType
	if strings.TrimSpace(rawServiceType) == "" {
		rawServiceType = string(uc.defaultServiceType)
	}
	serviceType, err := uc.catalog.Resolve(rawServiceType)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: unknown service type %q", req.ServiceType)
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, req.ServiceType)
	}
	duration, err := uc.catalog.Duration(serviceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownServiceType, err)
	}

	// 3. Занятость за рабочее окно; захватываем длительность услуги после конца окна,
	// чтобы последние слоты не пересекались с событиями после закрытия
	windowStart, windowEnd := uc.policy.DayWindow(day)
	fetchEnd := windowEnd.Add(duration)

	busy, err := uc.calendar.ListBusy(ctx, windowStart, fetchEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list busy intervals for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	// 4. Добавляем активные записи из БД (событие календаря могло быть изменено вручную)
	busy = append(busy, uc.scheduledIntervals(ctx, windowStart, fetchEnd)...)

	// 5. Генерация и фильтрация
	slots, err := uc.generator.Generate(day, serviceType, busy)
	if err != nil {
		if errors.Is(err, scheduling.ErrUnknownServiceType) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownServiceType, err)
		}
		return nil, err
	}

	result := make([]string, 0, len(slots))
	for _, slot := range scheduling.AvailableOnly(slots) {
		// Сегодняшние слоты, которые уже начались, не предлагаем
		if !slot.StartTime.After(now) {
			continue
		}
		result = append(result, scheduling.FormatSlotTime(slot.StartTime))
	}

	uc.logger.Info("GetAvailableSlots: date=%s, serviceType=%s, busy=%d, available=%d/%d",
		req.Date, serviceType, len(busy), len(result), len(slots))

	return &Response{
		Date:            day,
		ServiceType:     serviceType.String(),
		DurationMinutes: int(duration.Minutes()),
		Slots:           result,
	}, nil
}

// scheduledIntervals ошибка БД не прерывает чтение: бронирование перепроверяет конфликты строго
func (uc *UseCase) scheduledIntervals(ctx context.Context, from, to time.Time) []scheduling.BusyInterval {
	if uc.appointmentRepo == nil {
		return nil
	}

	appointments, err := uc.appointmentRepo.ListScheduledBetween(ctx, from, to)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to load scheduled appointments, using calendar only: %v", err)
		return nil
	}

	intervals := make([]scheduling.BusyInterval, 0, len(appointments))
	for _, appt := range appointments {
		intervals = append(intervals, scheduling.BusyInterval{Start: appt.StartTime, End: appt.EndTime})
	}
	return intervals
}
