package googlecalendar

import "time"

// Options параметры клиента календаря
type Options struct {
	CalendarID string
	Location   *time.Location
	// Timeout ограничение на каждый запрос к API; истечение -> ErrCalendarUnavailable / ErrCalendarWriteFailed
	Timeout time.Duration
	// EventSuffix добавляется к заголовку события (" (DEV)" в dev-окружении)
	EventSuffix string
	// InviteAttendees добавлять клиента участником события (требует domain-wide delegation)
	InviteAttendees bool
}

// Credentials учетные данные сервисного аккаунта
// Используется либо файл ключа, либо пара email + private key
type Credentials struct {
	File       string
	Email      string
	PrivateKey string
}

// Названия операций для метрик calendar_requests_total{op}
const (
	opListBusy    = "list_busy"
	opInsertEvent = "insert_event"
	opDeleteEvent = "delete_event"

	resultOK    = "ok"
	resultError = "error"
)
