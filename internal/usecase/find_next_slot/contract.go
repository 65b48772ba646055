package find_next_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// AvailabilityService движок доступности
type AvailabilityService interface {
	NextFittingSlot(ctx context.Context, owner domain.OwnerRef, afterDate time.Time, dayStart, dayEnd types.TimeString, slotDuration, bufferMinutes, horizonDays int, cfg domain.SchedulingConfig) (*domain.DatedSlot, error)
	NextBookableSlot(ctx context.Context, owner domain.OwnerRef, afterDate time.Time, slotDuration, bufferMinutes, horizonDays int, cfg domain.SchedulingConfig) (*domain.DatedSlot, error)
}

// ConfigResolver собирает действующую конфигурацию движка для владельца
type ConfigResolver interface {
	ResolveSchedulingConfig(ctx context.Context, owner domain.OwnerRef) (domain.SchedulingConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
