package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек расписания владельца
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	ConflictDetectionEnabled *bool `json:"conflictDetectionEnabled,omitempty"`
	BufferMinutes            *int  `json:"bufferMinutes,omitempty"`
	RequireFutureDates       *bool `json:"requireFutureDates,omitempty"`
	MaxDateRangeDays         *int  `json:"maxDateRangeDays,omitempty"`
	MinPeriodMinutes         *int  `json:"minPeriodMinutes,omitempty"`
	MaxPeriodMinutes         *int  `json:"maxPeriodMinutes,omitempty"`
	MaxPeriodsPerBooking     *int  `json:"maxPeriodsPerBooking,omitempty"`
	AllowOverlappingPeriods  *bool `json:"allowOverlappingPeriods,omitempty"`
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.OwnerScheduleConfig) {
	if r.ConflictDetectionEnabled != nil {
		config.ConflictDetectionEnabled = *r.ConflictDetectionEnabled
	}
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.RequireFutureDates != nil {
		config.RequireFutureDates = *r.RequireFutureDates
	}
	if r.MaxDateRangeDays != nil {
		config.MaxDateRangeDays = *r.MaxDateRangeDays
	}
	if r.MinPeriodMinutes != nil {
		config.MinPeriodMinutes = *r.MinPeriodMinutes
	}
	if r.MaxPeriodMinutes != nil {
		config.MaxPeriodMinutes = *r.MaxPeriodMinutes
	}
	if r.MaxPeriodsPerBooking != nil {
		config.MaxPeriodsPerBooking = *r.MaxPeriodsPerBooking
	}
	if r.AllowOverlappingPeriods != nil {
		config.AllowOverlappingPeriods = *r.AllowOverlappingPeriods
	}
}

// Response модели

// ConfigResponse действующие настройки расписания владельца
type ConfigResponse struct {
	OwnerKind                string     `json:"ownerKind"`
	OwnerID                  string     `json:"ownerId"`
	ConflictDetectionEnabled bool       `json:"conflictDetectionEnabled"`
	BufferMinutes            int        `json:"bufferMinutes"`
	RequireFutureDates       bool       `json:"requireFutureDates"`
	MaxDateRangeDays         int        `json:"maxDateRangeDays"`
	MinPeriodMinutes         int        `json:"minPeriodMinutes"`
	MaxPeriodMinutes         int        `json:"maxPeriodMinutes"`
	MaxPeriodsPerBooking     int        `json:"maxPeriodsPerBooking"`
	AllowOverlappingPeriods  bool       `json:"allowOverlappingPeriods"`
	IsDefault                bool       `json:"isDefault"` // true = у владельца нет своей записи
	UpdatedAt                *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует хранимое переопределение владельца в DTO
func FromDomainConfig(c *domain.OwnerScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	updatedAt := c.UpdatedAt
	return &ConfigResponse{
		OwnerKind:                c.Owner.Kind,
		OwnerID:                  c.Owner.ID,
		ConflictDetectionEnabled: c.ConflictDetectionEnabled,
		BufferMinutes:            c.BufferMinutes,
		RequireFutureDates:       c.RequireFutureDates,
		MaxDateRangeDays:         c.MaxDateRangeDays,
		MinPeriodMinutes:         c.MinPeriodMinutes,
		MaxPeriodMinutes:         c.MaxPeriodMinutes,
		MaxPeriodsPerBooking:     c.MaxPeriodsPerBooking,
		AllowOverlappingPeriods:  c.AllowOverlappingPeriods,
		UpdatedAt:                &updatedAt,
	}
}

// FromDefaults конвертирует сервисные умолчания в DTO для владельца без своей записи
func FromDefaults(owner domain.OwnerRef, cfg domain.SchedulingConfig) *ConfigResponse {
	return &ConfigResponse{
		OwnerKind:                owner.Kind,
		OwnerID:                  owner.ID,
		ConflictDetectionEnabled: cfg.ConflictDetectionEnabled,
		BufferMinutes:            cfg.BufferMinutes,
		RequireFutureDates:       cfg.RequireFutureDates,
		MaxDateRangeDays:         cfg.MaxDateRangeDays,
		MinPeriodMinutes:         cfg.MinPeriodMinutes,
		MaxPeriodMinutes:         cfg.MaxPeriodMinutes,
		MaxPeriodsPerBooking:     cfg.MaxPeriodsPerBooking,
		AllowOverlappingPeriods:  cfg.AllowOverlappingPeriods,
		IsDefault:                true,
	}
}
