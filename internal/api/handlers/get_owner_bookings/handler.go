package get_owner_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerKind}/{ownerId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), type, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerKind := vars["ownerKind"]
	ownerID := vars["ownerId"]

	query := r.URL.Query()

	serviceReq := &models.GetOwnerBookingsRequest{
		OwnerKind:       ownerKind,
		OwnerID:         ownerID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	// Границы периода (опционально)
	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /owners/{kind}/{id}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /owners/{kind}/{id}/bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.EndDate = &end
	}

	// Фильтр по типу (опционально)
	if typeStr := query.Get("type"); typeStr != "" {
		serviceReq.Type = &typeStr
	}

	result, err := h.service.GetOwnerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/{kind}/{id}/bookings - Invalid filter: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /owners/{kind}/{id}/bookings - Failed to get bookings: owner=%s/%s, error=%v",
				ownerKind, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{kind}/{id}/bookings - Bookings retrieved successfully: owner=%s/%s, count=%d",
		ownerKind, ownerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
