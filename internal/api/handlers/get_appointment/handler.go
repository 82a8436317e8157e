package get_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUser          = "пользователь не определен"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	appt, err := h.service.Get(r.Context(), actor, appointmentID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /appointments/{id} - id=%d, %s: %v", appointmentID, actor, err)
		} else {
			h.logger.Error("GET /appointments/{id} - Failed to get: id=%d, error=%v", appointmentID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.ToAppointmentResponse(appt, actor))
}
