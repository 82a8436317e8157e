package list_time_off

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidStatus     = "некорректный статус, ожидается pending, approved или rejected"
	msgMissingUser       = "пользователь не определен"
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

// Handle GET /api/v1/time-off
// Query params: employeeId (optional), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var filter timeoff.ListFilter
	query := r.URL.Query()

	if raw := query.Get("employeeId"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		filter.EmployeeID = &employeeID
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseTimeOffStatus(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	list, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /time-off - %s: %v", actor, err)
		} else {
			h.logger.Error("GET /time-off - Failed to list: error=%v", err)
		}
		return
	}

	h.logger.Info("GET /time-off - %d requests for %s", len(list), actor)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToTimeOffList(list))
}
