package cancel_appointment

import (
	"github.com/collegeprep/CPS-AppointmentService/internal/service/appointments/models"
)

const (
	msgCancelled        = "appointment cancelled"
	msgAlreadyCancelled = "appointment was already cancelled"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// FromServiceResponse конвертирует результат отмены в HTTP response
func FromServiceResponse(resp *models.CancelResponse) *CancelAppointmentResponse {
	message := msgCancelled
	if resp.AlreadyCancelled {
		message = msgAlreadyCancelled
	}
	return &CancelAppointmentResponse{
		ID:      resp.ID,
		Message: message,
	}
}
