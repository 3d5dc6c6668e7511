package get_available_slots

import "time"

// Request модель запроса на получение свободных слотов
type Request struct {
	Date        string // "2026-10-19"
	ServiceType string // пусто - услуга по умолчанию
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	ServiceType     string
	DurationMinutes int
	Slots           []string // "9:00 AM", "9:30 AM", ...
}
