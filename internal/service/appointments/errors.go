package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrCalendarWriteFailed возвращается, когда событие календаря не удалось удалить
	// Локальная запись при этом остается активной, отмену можно повторить
	ErrCalendarWriteFailed = errors.New("appointments: calendar write failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
