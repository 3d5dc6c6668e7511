package create_appointment

import (
	createAppointment "github.com/collegeprep/CPS-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date        string  `json:"date"`     // "2026-10-19"
	TimeSlot    string  `json:"timeSlot"` // "10:00 AM"
	ContactName string  `json:"contactName"`
	ParentName  *string `json:"parentName,omitempty"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ServiceType string  `json:"serviceType"`
	Course      *string `json:"course,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	AppointmentID   string `json:"appointmentId"`
	ExternalEventID string `json:"externalEventId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		ContactName: r.ContactName,
		ParentName:  r.ParentName,
		Email:       r.Email,
		Phone:       r.Phone,
		ServiceType: r.ServiceType,
		Course:      r.Course,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentID:   resp.AppointmentID,
		ExternalEventID: resp.ExternalEventID,
	}
}
