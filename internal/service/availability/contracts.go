package availability

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingRepository bulk-загрузка бронирований владельца вместе с периодами
type BookingRepository interface {
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
}

// ConflictChecker in-memory проверка кандидата против уже загруженного набора
// бронирований. Слоты классифицируются без дополнительных запросов к хранилищу.
type ConflictChecker interface {
	FindConflictsAmong(candidate *domain.CandidateBooking, existing []*domain.Booking, cfg domain.SchedulingConfig, appliesTo []domain.BookingType) []*domain.Booking
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
