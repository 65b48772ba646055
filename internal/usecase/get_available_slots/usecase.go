package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case получения слотов на день
type UseCase struct {
	availability   AvailabilityService
	configResolver ConfigResolver
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	configResolver ConfigResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:   availability,
		configResolver: configResolver,
		logger:         logger,
	}
}

// Execute выполняет use case получения слотов.
// Чистая операция чтения: состояние хранилища не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Mode == "" {
		req.Mode = ModeWindow
	}

	uc.logger.Info("GetAvailableSlots: owner=%s/%s, date=%s, mode=%s, duration=%d, buffer=%d",
		req.OwnerKind, req.OwnerID, req.Date.Format(domain.DateFormat),
		req.Mode, req.SlotDurationMinutes, req.BufferMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	owner := domain.OwnerRef{Kind: req.OwnerKind, ID: req.OwnerID}

	cfg, err := uc.configResolver.ResolveSchedulingConfig(ctx, owner)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	var slots []domain.Slot

	switch req.Mode {
	case ModeBookable:
		slots, err = uc.availability.BookableSlots(ctx, owner, req.Date,
			req.SlotDurationMinutes, req.BufferMinutes, cfg)
	default:
		slots, err = uc.availability.SlotsInWindow(ctx, owner, req.Date,
			types.TimeString(req.DayStart), types.TimeString(req.DayEnd),
			req.SlotDurationMinutes, req.BufferMinutes, cfg)
	}

	if err != nil {
		uc.logger.Error("GetAvailableSlots: engine error for owner=%s/%s: %v", req.OwnerKind, req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: built %d slots for owner=%s/%s on %s",
		len(slots), req.OwnerKind, req.OwnerID, req.Date.Format(domain.DateFormat))

	return FromDomainSlots(req.Date, req.Mode, slots), nil
}
