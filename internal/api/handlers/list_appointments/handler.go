package list_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	msgInvalidScope = "некорректный scope, ожидается mine, today, upcoming или all"
	msgMissingUser  = "пользователь не определен"
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

// Handle GET /api/v1/appointments?scope=mine|today|upcoming|all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// По умолчанию mine
	scope, err := domain.ParseAppointmentScope(r.URL.Query().Get("scope"))
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid scope: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScope)
		return
	}

	list, err := h.service.List(r.Context(), actor, scope)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /appointments - scope=%s, %s: %v", scope, actor, err)
		} else {
			h.logger.Error("GET /appointments - Failed to list: scope=%s, error=%v", scope, err)
		}
		return
	}

	h.logger.Info("GET /appointments - scope=%s, count=%d", scope, len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.ToAppointmentList(list, actor))
}
