package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается для некорректной, прошедшей или выходной даты
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrUnknownServiceType возвращается для услуги, которой нет в каталоге
	ErrUnknownServiceType = errors.New("get_available_slots: unknown service type")

	// ErrCalendarUnavailable возвращается, когда занятость календаря не получена; запрос можно повторить
	ErrCalendarUnavailable = errors.New("get_available_slots: calendar unavailable")
)
