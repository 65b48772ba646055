package find_next_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case поиска ближайшего свободного слота
type UseCase struct {
	availability   AvailabilityService
	configResolver ConfigResolver
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilitySvc AvailabilityService,
	configResolver ConfigResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:   availabilitySvc,
		configResolver: configResolver,
		logger:         logger,
	}
}

// Execute выполняет use case поиска слота. Идет вперед по календарю от
// AfterDate, день за днем, и возвращает первый свободный слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Mode == "" {
		req.Mode = ModeWindow
	}

	uc.logger.Info("FindNextSlot: owner=%s/%s, after=%s, mode=%s, duration=%d, horizon=%d",
		req.OwnerKind, req.OwnerID, req.AfterDate.Format(domain.DateFormat),
		req.Mode, req.SlotDurationMinutes, req.HorizonDays)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextSlot: validation failed: %v", err)
		return nil, err
	}

	owner := domain.OwnerRef{Kind: req.OwnerKind, ID: req.OwnerID}

	cfg, err := uc.configResolver.ResolveSchedulingConfig(ctx, owner)
	if err != nil {
		uc.logger.Error("FindNextSlot: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	var found *domain.DatedSlot

	switch req.Mode {
	case ModeBookable:
		found, err = uc.availability.NextBookableSlot(ctx, owner, req.AfterDate,
			req.SlotDurationMinutes, req.BufferMinutes, req.HorizonDays, cfg)
	default:
		found, err = uc.availability.NextFittingSlot(ctx, owner, req.AfterDate,
			types.TimeString(req.DayStart), types.TimeString(req.DayEnd),
			req.SlotDurationMinutes, req.BufferMinutes, req.HorizonDays, cfg)
	}

	if err != nil {
		if errors.Is(err, availability.ErrNoSlotAvailable) {
			uc.logger.Info("FindNextSlot: no slot found for owner=%s/%s within horizon", req.OwnerKind, req.OwnerID)
			return nil, ErrNoSlotFound
		}
		uc.logger.Error("FindNextSlot: engine error for owner=%s/%s: %v", req.OwnerKind, req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("FindNextSlot: found slot %s %s-%s for owner=%s/%s",
		found.Date.Format(domain.DateFormat), found.Slot.StartTime, found.Slot.EndTime,
		req.OwnerKind, req.OwnerID)

	return FromDatedSlot(found), nil
}
