package create_appointment

import (
	"errors"
	"net/http"

	"github.com/collegeprep/CPS-AppointmentService/internal/api/handlers"
	createAppointment "github.com/collegeprep/CPS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgValidationFailed    = "missing or invalid fields"
	msgInvalidDate         = "invalid date: expected a weekday in YYYY-MM-DD format that is not in the past"
	msgUnknownServiceType  = "unknown service type"
	msgOutOfPolicy         = "requested time is outside business hours"
	msgSlotConflict        = "the selected time slot is no longer available"
	msgCalendarUnavailable = "failed to verify availability, please try again"
	msgCalendarWriteFailed = "failed to create the calendar event, please try again"
	msgPersistenceFailed   = "the appointment could not be saved, please contact us to confirm your booking"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var validationErr *createAppointment.ValidationError
		var policyErr *createAppointment.PolicyError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgValidationFailed, validationErr.Fields)

		case errors.As(err, &policyErr):
			h.logger.Warn("POST /appointments - Out of policy: date=%s, timeSlot=%s, serviceType=%s, reasons=%v",
				req.Date, req.TimeSlot, req.ServiceType, policyErr.Reasons)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgOutOfPolicy, policyErr.Reasons)

		case errors.Is(err, createAppointment.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrUnknownServiceType):
			h.logger.Warn("POST /appointments - Unknown service type: serviceType=%s", req.ServiceType)
			handlers.RespondBadRequest(w, msgUnknownServiceType)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: date=%s, timeSlot=%s, serviceType=%s",
				req.Date, req.TimeSlot, req.ServiceType)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrCalendarUnavailable):
			h.logger.Error("POST /appointments - Calendar unavailable: date=%s, error=%v", req.Date, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		case errors.Is(err, createAppointment.ErrCalendarWriteFailed):
			h.logger.Error("POST /appointments - Calendar write failed: date=%s, timeSlot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarWriteFailed)

		case errors.Is(err, createAppointment.ErrPersistenceFailed):
			h.logger.Error("POST /appointments - Persistence failed after calendar write: date=%s, timeSlot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPersistenceFailed)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, timeSlot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, event_id=%s",
		result.AppointmentID, result.ExternalEventID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
