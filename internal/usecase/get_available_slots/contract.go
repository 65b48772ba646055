package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// AvailabilityService движок доступности
type AvailabilityService interface {
	SlotsInWindow(ctx context.Context, owner domain.OwnerRef, date time.Time, dayStart, dayEnd types.TimeString, slotDuration, bufferMinutes int, cfg domain.SchedulingConfig) ([]domain.Slot, error)
	BookableSlots(ctx context.Context, owner domain.OwnerRef, date time.Time, slotDuration, bufferMinutes int, cfg domain.SchedulingConfig) ([]domain.Slot, error)
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
