package get_schedule_overview

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	getScheduleOverview "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser       = "пользователь не определен"
)

type Handler struct {
	useCase GetScheduleOverviewUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleOverviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/schedule-overview
// Query params: serviceId (optional), dateFrom, dateTo (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/schedule-overview - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query := r.URL.Query()

	var serviceID int64
	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
	}

	dateFrom, err := handlers.ParseDate(query.Get("dateFrom"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	dateTo, err := handlers.ParseDate(query.Get("dateTo"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getScheduleOverview.Request{
		Actor:      actor,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /employees/{id}/schedule-overview - employee_id=%d: %v", employeeID, err)
		} else {
			h.logger.Error("GET /employees/{id}/schedule-overview - Failed: employee_id=%d, error=%v", employeeID, err)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/schedule-overview - employee_id=%d, time_off=%d, days_with_slots=%d",
		employeeID, len(result.TimeOff), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
