package reset_owner_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config"
)

const msgNotFound = "персональная конфигурация не найдена"

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

// Handle DELETE /api/v1/owners/{ownerKind}/{ownerId}/schedule-config
// Сбрасывает владельца на умолчания сервиса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := domain.OwnerRef{Kind: vars["ownerKind"], ID: vars["ownerId"]}

	if err := h.service.ResetOwnerConfig(r.Context(), owner); err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("DELETE /owners/{kind}/{id}/schedule-config - Config not found: owner=%s/%s",
				owner.Kind, owner.ID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /owners/{kind}/{id}/schedule-config - Failed to reset config: owner=%s/%s, error=%v",
				owner.Kind, owner.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /owners/{kind}/{id}/schedule-config - Config reset successfully: owner=%s/%s",
		owner.Kind, owner.ID)
	handlers.RespondNoContent(w)
}
