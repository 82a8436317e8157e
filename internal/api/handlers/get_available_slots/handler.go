package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidQuery      = "некорректные параметры: serviceId, dateFrom и dateTo (YYYY-MM-DD), ignoreTimeOff"
	msgMissingUser       = "пользователь не определен"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-slots
// Query params: serviceId (optional), dateFrom, dateTo (required, YYYY-MM-DD), ignoreTimeOff (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query, err := ToServiceQuery(employeeID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	groups, err := h.service.Available(r.Context(), actor, query)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /employees/{id}/available-slots - employee_id=%d: %v", employeeID, err)
		} else {
			h.logger.Error("GET /employees/{id}/available-slots - Failed: employee_id=%d, error=%v", employeeID, err)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/available-slots - employee_id=%d, service_id=%d, days=%d",
		employeeID, query.ServiceID, len(groups))
	handlers.RespondJSON(w, http.StatusOK, &AvailableSlotsResponse{
		EmployeeID: employeeID,
		ServiceID:  query.ServiceID,
		Days:       handlers.ToDayGroups(groups),
	})
}
