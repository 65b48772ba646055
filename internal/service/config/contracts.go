package config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ConfigRepository интерфейс репозитория настроек расписания владельцев
type ConfigRepository interface {
	GetByOwner(ctx context.Context, owner domain.OwnerRef) (*domain.OwnerScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.OwnerScheduleConfig) (*domain.OwnerScheduleConfig, error)
	Delete(ctx context.Context, owner domain.OwnerRef) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
