package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/collegeprep/CPS-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/collegeprep/CPS-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "date is required"
	msgInvalidDate         = "invalid date: expected a weekday in YYYY-MM-DD format that is not in the past"
	msgUnknownServiceType  = "unknown service type"
	msgCalendarUnavailable = "failed to load availability, please try again"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available-slots
// Query params: date (required, YYYY-MM-DD), serviceType (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	serviceType := r.URL.Query().Get("serviceType")

	if date == "" {
		h.logger.Warn("GET /appointments/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(date, serviceType))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /appointments/available-slots - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrUnknownServiceType):
			h.logger.Warn("GET /appointments/available-slots - Unknown service type: serviceType=%s", serviceType)
			handlers.RespondBadRequest(w, msgUnknownServiceType)

		case errors.Is(err, getAvailableSlots.ErrCalendarUnavailable):
			h.logger.Error("GET /appointments/available-slots - Calendar unavailable: date=%s, error=%v", date, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /appointments/available-slots - Failed to get slots: date=%s, serviceType=%s, error=%v",
				date, serviceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/available-slots - Slots retrieved successfully: date=%s, serviceType=%s, slots_count=%d",
		date, result.ServiceType, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
