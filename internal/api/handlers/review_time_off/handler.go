package review_time_off

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
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

// Handle PATCH /api/v1/time-off/{requestId}/{decision:approve|reject}
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

	decision := domain.TimeOffDecision(mux.Vars(r)["decision"])

	updated, err := h.service.Review(r.Context(), actor, requestID, decision)
	if err != nil {
		if handlers.RespondDomainErrorWithCurrent(w, err, handlers.CurrentTimeOff(updated)) {
			h.logger.Warn("PATCH /time-off/{id}/%s - id=%d: %v", decision, requestID, err)
		} else {
			h.logger.Error("PATCH /time-off/{id}/%s - Failed: id=%d, error=%v", decision, requestID, err)
		}
		return
	}

	h.logger.Info("PATCH /time-off/{id}/%s - id=%d is %s", decision, requestID, updated.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.ToTimeOffResponse(updated))
}
