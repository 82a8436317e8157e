package reopen_time_off

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
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

// Handle PATCH /api/v1/time-off/{requestId}/reopen
// Менеджер возвращает рассмотренную заявку в pending, задавая даты заново
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req ReopenTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToServiceInput()
	if err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	updated, err := h.service.Reopen(r.Context(), actor, requestID, input)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentTimeOff(updated)) {
			h.logger.Warn("PATCH /time-off/{id}/reopen - id=%d: %v", requestID, err)
		} else {
			h.logger.Error("PATCH /time-off/{id}/reopen - Failed: id=%d, error=%v", requestID, err)
		}
		return
	}

	h.logger.Info("PATCH /time-off/{id}/reopen - id=%d reopened by %s", requestID, actor)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToTimeOffResponse(updated))
}
