package googlecalendar

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда не удалось получить занятость календаря (в том числе по таймауту)
	// Операция чтения, повтор безопасен
	ErrCalendarUnavailable = errors.New("googlecalendar: calendar unavailable")

	// ErrCalendarWriteFailed возвращается при ошибке создания или удаления события
	// Создание события не идемпотентно, автоматически не повторяется
	ErrCalendarWriteFailed = errors.New("googlecalendar: calendar write failed")

	// ErrInvalidResponse возвращается, когда событие календаря нельзя разобрать
	ErrInvalidResponse = errors.New("googlecalendar: invalid response")

	// ErrInvalidCredentials возвращается при отсутствии или некорректности учетных данных сервисного аккаунта
	ErrInvalidCredentials = errors.New("googlecalendar: invalid credentials")
)
