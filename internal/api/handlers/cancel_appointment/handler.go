package cancel_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/collegeprep/CPS-AppointmentService/internal/api/handlers"
	"github.com/collegeprep/CPS-AppointmentService/internal/service/appointments"
)

const (
	msgMissingAppointmentID = "appointment id is required"
	msgNotFound             = "appointment not found"
	msgCalendarWriteFailed  = "failed to remove the calendar event, please try again"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
// Повторная отмена возвращает 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := strings.TrimSpace(mux.Vars(r)["appointmentId"])
	if appointmentID == "" {
		h.logger.Warn("DELETE /appointments/{id} - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	result, err := h.service.Cancel(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCalendarWriteFailed):
			h.logger.Error("DELETE /appointments/{id} - Calendar write failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarWriteFailed)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment cancelled successfully: appointment_id=%s, already_cancelled=%t",
		appointmentID, result.AlreadyCancelled)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
