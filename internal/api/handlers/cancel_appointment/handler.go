package cancel_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
// Тело запроса необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), actor, appointmentID, req.Reason)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentAppointment(cancelled, actor)) {
			h.logger.Warn("PATCH /appointments/{id}/cancel - id=%d, %s: %v", appointmentID, actor, err)
		} else {
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: id=%d, error=%v",
				appointmentID, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Cancelled: id=%d, by %s", appointmentID, actor)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToAppointmentResponse(cancelled, actor))
}
