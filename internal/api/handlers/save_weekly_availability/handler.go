package save_weekly_availability

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingDays        = "поле days обязательно"
	msgMissingUser        = "пользователь не определен"
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

// Handle PUT /api/v1/employees/{employeeId}/weekly-availability
// Неделя заменяется целиком, отсутствующий день считается выходным
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("PUT /employees/{id}/weekly-availability - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req handlers.WeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id}/weekly-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Days == nil {
		handlers.RespondBadRequest(w, msgMissingDays)
		return
	}

	// Все нарушения, включая неизвестные ключи дней, возвращаются одним ответом
	week, violations := domain.FromWire(employeeID, req.Days)
	if len(violations) > 0 {
		h.logger.Warn("PUT /employees/{id}/weekly-availability - employee_id=%d rejected: %v", employeeID, violations)
		handlers.RespondValidation(w, violations)
		return
	}

	result, err := h.service.Save(r.Context(), actor, week)
	if err != nil {
		// при сбое salon API клиент получает перечитанную неделю
		var current interface{}
		if result != nil {
			current = handlers.ToWeekResponse(result.Week, result.Violations, result.ChangedSinceLastSeen)
		}
		if handlers.RespondDomainErrorWithCurrent(w, err, current) {
			h.logger.Warn("PUT /employees/{id}/weekly-availability - employee_id=%d: %v", employeeID, err)
		} else {
			h.logger.Error("PUT /employees/{id}/weekly-availability - Failed to save: employee_id=%d, error=%v", employeeID, err)
		}
		return
	}

	h.logger.Info("PUT /employees/{id}/weekly-availability - Saved: employee_id=%d by %s", employeeID, actor)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToWeekResponse(result.Week, result.Violations, false))
}
