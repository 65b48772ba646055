package create_booking

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConfigResolver собирает действующую конфигурацию движка для владельца
type ConfigResolver interface {
	ResolveSchedulingConfig(ctx context.Context, owner domain.OwnerRef) (domain.SchedulingConfig, error)
}

// Validator пайплайн валидации кандидата бронирования
type Validator interface {
	Validate(ctx context.Context, candidate *domain.CandidateBooking, cfg domain.SchedulingConfig) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
