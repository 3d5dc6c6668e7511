package domain

import "time"

// AppointmentStatus статус записи на занятие
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента на услугу
// Физически не удаляется: при отмене меняется только статус
type Appointment struct {
	ID          string
	ContactName string
	ParentName  *string
	Email       string
	Phone       string
	ServiceType ServiceType
	Course      *string
	Notes       *string

	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus

	// ExternalEventID ID события в Google Calendar (nil, если событие не создавалось)
	ExternalEventID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// HasCalendarEvent returns true if the appointment is linked to an external calendar event
func (a *Appointment) HasCalendarEvent() bool {
	return a.ExternalEventID != nil && *a.ExternalEventID != ""
}

// Duration длительность записи
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
