package delete_time_off

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUser      = "пользователь не определен"
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

// Handle DELETE /api/v1/time-off/{requestId}
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

	if current, err := h.service.Delete(r.Context(), actor, requestID); err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentTimeOff(current)) {
			h.logger.Warn("DELETE /time-off/{id} - id=%d: %v", requestID, err)
		} else {
			h.logger.Error("DELETE /time-off/{id} - Failed: id=%d, error=%v", requestID, err)
		}
		return
	}

	h.logger.Info("DELETE /time-off/{id} - id=%d deleted by %s", requestID, actor)
	w.WriteHeader(http.StatusNoContent)
}
