package reschedule_appointment

import (
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
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
// 409 с retry=true, если слот успел уйти
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

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(actor, appointmentID)
	if err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	moved, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentAppointment(moved, actor)) {
			h.logger.Warn("PATCH /appointments/{id}/reschedule - id=%d, start=%s: %v",
				appointmentID, req.Start, err)
		} else {
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: id=%d, error=%v", appointmentID, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Moved: id=%d, start=%s",
		appointmentID, moved.Start.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusOK, handlers.ToAppointmentResponse(moved, actor))
}
