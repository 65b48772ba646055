package validation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ConflictFinder сервис детекции конфликтов, к которому делегирует правило noOverlap
type ConflictFinder interface {
	FindConflicts(ctx context.Context, candidate *domain.CandidateBooking, cfg domain.SchedulingConfig, appliesTo []domain.BookingType) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider абстракция времени для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// SystemTime реализация TimeProvider на системных часах
type SystemTime struct{}

func (SystemTime) Now() time.Time {
	return time.Now()
}
