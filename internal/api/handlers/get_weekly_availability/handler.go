package get_weekly_availability

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingUser       = "пользователь не определен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/weekly-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/weekly-availability - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.Load(r.Context(), actor, employeeID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /employees/{id}/weekly-availability - employee_id=%d: %v", employeeID, err)
		} else {
			h.logger.Error("GET /employees/{id}/weekly-availability - Failed to load: employee_id=%d, error=%v", employeeID, err)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/weekly-availability - Loaded: employee_id=%d, violations=%d, changed=%t",
		employeeID, len(result.Violations), result.ChangedSinceLastSeen)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToWeekResponse(result.Week, result.Violations, result.ChangedSinceLastSeen))
}
