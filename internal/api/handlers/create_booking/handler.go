package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgValidationFailed   = "бронирование не прошло валидацию"
	msgConflict           = "бронирование пересекается с существующими"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Ошибки пайплайна валидации приходят без обертки, различаем по типу
		var constructionErr *domain.ConstructionError
		var validationErr *domain.ValidationError
		var conflictErr *domain.ConflictError

		switch {
		case errors.As(err, &constructionErr):
			h.logger.Warn("POST /bookings - Construction error: owner=%s/%s, field=%s",
				req.OwnerKind, req.OwnerID, constructionErr.Field)
			handlers.RespondJSON(w, http.StatusBadRequest, &ValidationFieldsResponse{
				Message: msgValidationFailed,
				Fields:  map[string][]string{constructionErr.Field: {constructionErr.Message}},
			})

		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: owner=%s/%s, fields=%d",
				req.OwnerKind, req.OwnerID, len(validationErr.Fields))
			handlers.RespondJSON(w, http.StatusBadRequest, &ValidationFieldsResponse{
				Message: msgValidationFailed,
				Fields:  validationErr.Fields,
			})

		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Conflict detected: owner=%s/%s, conflicts=%d",
				req.OwnerKind, req.OwnerID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgConflict, conflictErr))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: owner=%s/%s, error=%v",
				req.OwnerKind, req.OwnerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: owner=%s/%s, error=%v",
				req.OwnerKind, req.OwnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, owner=%s/%s",
		result.ID, req.OwnerKind, req.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
