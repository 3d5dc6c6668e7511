package domain

import "time"

// EmailStatus результат попытки отправки письма
type EmailStatus string

const (
	EmailSent   EmailStatus = "SENT"
	EmailFailed EmailStatus = "FAILED"
)

// EmailType вид уведомления
type EmailType string

const (
	EmailConfirmation      EmailType = "appointment_confirmation"
	EmailAdminNotification EmailType = "admin_notification"
	EmailCancellation      EmailType = "appointment_cancellation"
)

// EmailLog одна попытка отправки уведомления (append-only)
type EmailLog struct {
	ID            int64
	AppointmentID *string
	To            string
	Subject       string
	Type          EmailType
	Status        EmailStatus
	Error         *string
	CreatedAt     time.Time
}
