package create_time_off

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
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToServiceInput(actor)
	if err != nil {
		h.logger.Warn("POST /time-off - Failed to parse request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentTimeOff(created)) {
			h.logger.Warn("POST /time-off - employee_id=%d: %v", input.EmployeeID, err)
		} else {
			h.logger.Error("POST /time-off - Failed to create: employee_id=%d, error=%v", input.EmployeeID, err)
		}
		return
	}

	h.logger.Info("POST /time-off - Created: id=%d, employee_id=%d", created.ID, created.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.ToTimeOffResponse(created))
}
