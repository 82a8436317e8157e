package create_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не определен"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToDomain(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentAppointment(created, actor)) {
			h.logger.Warn("POST /appointments - employee_id=%d, client_id=%d: %v",
				input.EmployeeID, input.ClientID, err)
		} else {
			h.logger.Error("POST /appointments - Failed to create: employee_id=%d, error=%v",
				input.EmployeeID, err)
		}
		return
	}

	h.logger.Info("POST /appointments - Created: id=%d, employee_id=%d, client_id=%d, start=%s",
		created.ID, created.EmployeeID, created.ClientID, created.Start.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusCreated, handlers.ToAppointmentResponse(created, actor))
}
