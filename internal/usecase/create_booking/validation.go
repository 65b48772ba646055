package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest грубые проверки формы запроса. Содержательная валидация
// (даты, периоды, правила, конфликты) - дело пайплайна валидации.
func validateRequest(req *Request) error {
	if req.OwnerKind == "" {
		return fmt.Errorf("%w: ownerKind is required", ErrInvalidInput)
	}
	if req.OwnerID == "" {
		return fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
	}

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if req.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	}

	if req.IsRecurring && req.Recurrence == nil {
		return fmt.Errorf("%w: recurrence is required for recurring bookings", ErrInvalidInput)
	}

	return nil
}
