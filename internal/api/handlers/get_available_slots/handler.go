package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidSlotParams = "некорректные параметры нарезки слотов"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerKind}/{ownerId}/available-slots
// Query params: date (required, YYYY-MM-DD), mode (window|bookable),
// dayStart, dayEnd (HH:MM), durationMinutes, bufferMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerKind := vars["ownerKind"]
	ownerID := vars["ownerId"]

	query := r.URL.Query()
	if query.Get("date") == "" {
		h.logger.Warn("GET /owners/{kind}/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты и чисел)
	useCaseReq, err := ToUseCaseRequest(ownerKind, ownerID, query)
	if err != nil {
		h.logger.Warn("GET /owners/{kind}/{id}/available-slots - Failed to parse params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /owners/{kind}/{id}/available-slots - Invalid request: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotParams)

		default:
			h.logger.Error("GET /owners/{kind}/{id}/available-slots - Failed to get slots: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{kind}/{id}/available-slots - Slots retrieved successfully: owner=%s/%s, slots_count=%d",
		ownerKind, ownerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
