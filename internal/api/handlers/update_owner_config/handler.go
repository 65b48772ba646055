package update_owner_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/owners/{ownerKind}/{ownerId}/schedule-config
// Частичное обновление: затрагиваются только переданные поля,
// первое обновление создает персональную конфигурацию из умолчаний
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := domain.OwnerRef{Kind: vars["ownerKind"], ID: vars["ownerId"]}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /owners/{kind}/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateOwnerConfig(r.Context(), owner, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /owners/{kind}/{id}/schedule-config - Invalid data: owner=%s/%s, error=%v",
				owner.Kind, owner.ID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /owners/{kind}/{id}/schedule-config - Failed to update config: owner=%s/%s, error=%v",
				owner.Kind, owner.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /owners/{kind}/{id}/schedule-config - Config updated successfully: owner=%s/%s",
		owner.Kind, owner.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
