package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerKind == "" {
		return fmt.Errorf("%w: ownerKind is required", ErrInvalidInput)
	}
	if req.OwnerID == "" {
		return fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Mode != ModeWindow && req.Mode != ModeBookable {
		return fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInput, ModeWindow, ModeBookable)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.Mode == ModeWindow {
		if err := types.TimeString(req.DayStart).Validate(); err != nil {
			return fmt.Errorf("%w: invalid dayStart format: %v", ErrInvalidInput, err)
		}
		if err := types.TimeString(req.DayEnd).Validate(); err != nil {
			return fmt.Errorf("%w: invalid dayEnd format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
