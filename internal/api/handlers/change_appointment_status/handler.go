package change_appointment_status

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAction        = "неизвестное действие"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
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

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	action, err := domain.ParseAppointmentAction(req.Action)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - id=%d: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	updated, err := h.service.Transition(r.Context(), actor, appointmentID, action)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentAppointment(updated, actor)) {
			h.logger.Warn("PATCH /appointments/{id}/status - id=%d, action=%s, %s: %v",
				appointmentID, action, actor, err)
		} else {
			h.logger.Error("PATCH /appointments/{id}/status - Failed: id=%d, action=%s, error=%v",
				appointmentID, action, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - id=%d is %s", appointmentID, updated.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToAppointmentResponse(updated, actor))
}
