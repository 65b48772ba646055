package domain

import "time"

// OwnerScheduleConfig хранимое переопределение настроек движка для конкретного
// владельца. Если записи нет, действуют значения из конфигурации сервиса.
type OwnerScheduleConfig struct {
	ID    int64
	Owner OwnerRef

	ConflictDetectionEnabled bool
	BufferMinutes            int
	RequireFutureDates       bool
	MaxDateRangeDays         int
	MinPeriodMinutes         int
	MaxPeriodMinutes         int
	MaxPeriodsPerBooking     int
	AllowOverlappingPeriods  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToSchedulingConfig собирает итоговую immutable конфигурацию движка:
// значения владельца поверх дефолтов сервиса. Настройки именованных правил
// остаются сервисными - владельцы их не переопределяют.
func (c *OwnerScheduleConfig) ToSchedulingConfig(defaults SchedulingConfig) SchedulingConfig {
	result := defaults
	result.ConflictDetectionEnabled = c.ConflictDetectionEnabled
	result.BufferMinutes = c.BufferMinutes
	result.RequireFutureDates = c.RequireFutureDates
	result.MaxDateRangeDays = c.MaxDateRangeDays
	result.MinPeriodMinutes = c.MinPeriodMinutes
	result.MaxPeriodMinutes = c.MaxPeriodMinutes
	result.MaxPeriodsPerBooking = c.MaxPeriodsPerBooking
	result.AllowOverlappingPeriods = c.AllowOverlappingPeriods
	return result
}

// FromSchedulingConfig создает переопределение владельца из итоговой конфигурации
func FromSchedulingConfig(owner OwnerRef, cfg SchedulingConfig) *OwnerScheduleConfig {
	return &OwnerScheduleConfig{
		Owner:                    owner,
		ConflictDetectionEnabled: cfg.ConflictDetectionEnabled,
		BufferMinutes:            cfg.BufferMinutes,
		RequireFutureDates:       cfg.RequireFutureDates,
		MaxDateRangeDays:         cfg.MaxDateRangeDays,
		MinPeriodMinutes:         cfg.MinPeriodMinutes,
		MaxPeriodMinutes:         cfg.MaxPeriodMinutes,
		MaxPeriodsPerBooking:     cfg.MaxPeriodsPerBooking,
		AllowOverlappingPeriods:  cfg.AllowOverlappingPeriods,
	}
}
