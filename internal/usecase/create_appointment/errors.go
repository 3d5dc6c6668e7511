package create_appointment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation возвращается, когда не заполнены обязательные поля или поле некорректно
	ErrValidation = errors.New("create_appointment: validation failed")

	// ErrInvalidDate возвращается для некорректной или недоступной для записи даты
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrUnknownServiceType возвращается для услуги, которой нет в каталоге
	ErrUnknownServiceType = errors.New("create_appointment: unknown service type")

	// ErrOutOfPolicy возвращается, когда запрошенное время нарушает правила записи
	ErrOutOfPolicy = errors.New("create_appointment: requested time is out of policy")

	// ErrSlotConflict возвращается, когда слот уже занят
	ErrSlotConflict = errors.New("create_appointment: slot is no longer available")

	// ErrCalendarUnavailable возвращается, когда не удалось перепроверить занятость в календаре
	ErrCalendarUnavailable = errors.New("create_appointment: calendar unavailable")

	// ErrCalendarWriteFailed возвращается, когда событие в календаре не создано; запись не сохраняется
	ErrCalendarWriteFailed = errors.New("create_appointment: failed to create calendar event")

	// ErrPersistenceFailed возвращается, когда событие создано, а запись не сохранена
	ErrPersistenceFailed = errors.New("create_appointment: failed to persist appointment")
)

// ValidationError список некорректных полей запроса
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PolicyError причины, по которым время записи недопустимо
type PolicyError struct {
	Reasons []string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfPolicy.Error(), strings.Join(e.Reasons, "; "))
}

func (e *PolicyError) Unwrap() error {
	return ErrOutOfPolicy
}
