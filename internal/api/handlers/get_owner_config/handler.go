package get_owner_config

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerKind}/{ownerId}/schedule-config
// Владелец без персональной конфигурации получает умолчания сервиса
// с признаком isDefault
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := domain.OwnerRef{Kind: vars["ownerKind"], ID: vars["ownerId"]}

	result, err := h.service.GetOwnerConfig(r.Context(), owner)
	if err != nil {
		h.logger.Error("GET /owners/{kind}/{id}/schedule-config - Failed to get config: owner=%s/%s, error=%v",
			owner.Kind, owner.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{kind}/{id}/schedule-config - Config retrieved successfully: owner=%s/%s, is_default=%t",
		owner.Kind, owner.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
