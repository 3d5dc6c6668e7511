package models

import (
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// AppointmentResponse данные записи для клиента
type AppointmentResponse struct {
	ID              string     `json:"id"`
	ContactName     string     `json:"contactName"`
	ParentName      *string    `json:"parentName,omitempty"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	ServiceType     string     `json:"serviceType"`
	Course          *string    `json:"course,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Date            string     `json:"date"`     // "2026-10-19"
	TimeSlot        string     `json:"timeSlot"` // "10:00 AM"
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	ExternalEventID *string    `json:"externalEventId,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CancelResponse результат отмены
type CancelResponse struct {
	ID string
	// AlreadyCancelled true, если запись была отменена раньше и ничего не изменилось
	AlreadyCancelled bool
}

// FromDomainAppointment конвертирует запись; дата и слот показываются в часовом поясе бизнеса
func FromDomainAppointment(appt *domain.Appointment, loc *time.Location) *AppointmentResponse {
	start := appt.StartTime.In(loc)
	return &AppointmentResponse{
		ID:              appt.ID,
		ContactName:     appt.ContactName,
		ParentName:      appt.ParentName,
		Email:           appt.Email,
		Phone:           appt.Phone,
		ServiceType:     appt.ServiceType.String(),
		Course:          appt.Course,
		Notes:           appt.Notes,
		Date:            start.Format(domain.DateFormat),
		TimeSlot:        scheduling.FormatSlotTime(start),
		StartTime:       start,
		EndTime:         appt.EndTime.In(loc),
		DurationMinutes: int(appt.Duration().Minutes()),
		Status:          string(appt.Status),
		ExternalEventID: appt.ExternalEventID,
		CancelledAt:     appt.CancelledAt,
		CreatedAt:       appt.CreatedAt,
	}
}
