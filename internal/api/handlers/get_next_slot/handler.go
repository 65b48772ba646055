package get_next_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	findNextSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_next_slot"
)

const (
	msgMissingAfterDate  = "дата начала поиска обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidSlotParams = "некорректные параметры поиска слота"
	msgNoSlotFound       = "свободный слот не найден в пределах горизонта поиска"
)

type Handler struct {
	useCase FindNextSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerKind}/{ownerId}/next-slot
// Query params: afterDate (required, YYYY-MM-DD), mode (window|bookable),
// dayStart, dayEnd (HH:MM), durationMinutes, bufferMinutes, horizonDays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerKind := vars["ownerKind"]
	ownerID := vars["ownerId"]

	query := r.URL.Query()
	if query.Get("afterDate") == "" {
		h.logger.Warn("GET /owners/{kind}/{id}/next-slot - Missing after date")
		handlers.RespondBadRequest(w, msgMissingAfterDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(ownerKind, ownerID, query)
	if err != nil {
		h.logger.Warn("GET /owners/{kind}/{id}/next-slot - Failed to parse params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findNextSlot.ErrInvalidInput):
			h.logger.Warn("GET /owners/{kind}/{id}/next-slot - Invalid request: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotParams)

		case errors.Is(err, findNextSlot.ErrNoSlotFound):
			h.logger.Info("GET /owners/{kind}/{id}/next-slot - No slot found: owner=%s/%s", ownerKind, ownerID)
			handlers.RespondNotFound(w, msgNoSlotFound)

		default:
			h.logger.Error("GET /owners/{kind}/{id}/next-slot - Failed to find slot: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{kind}/{id}/next-slot - Slot found: owner=%s/%s, date=%s, start=%s",
		ownerKind, ownerID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
