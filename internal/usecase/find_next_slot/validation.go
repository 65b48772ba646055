package find_next_slot

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Верхний предел глубины поиска, чтобы запрос не превращался в перебор лет
const maxHorizonDays = 365

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerKind == "" {
		return fmt.Errorf("%w: ownerKind is required", ErrInvalidInput)
	}
	if req.OwnerID == "" {
		return fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
	}
	if req.AfterDate.IsZero() {
		return fmt.Errorf("%w: afterDate is required", ErrInvalidInput)
	}

	if req.Mode != ModeWindow && req.Mode != ModeBookable {
		return fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInput, ModeWindow, ModeBookable)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.HorizonDays < 0 || req.HorizonDays > maxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between 0 and %d", ErrInvalidInput, maxHorizonDays)
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
