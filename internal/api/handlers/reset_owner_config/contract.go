package reset_owner_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type ConfigService interface {
	ResetOwnerConfig(ctx context.Context, owner domain.OwnerRef) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
