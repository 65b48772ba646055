package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedcfg"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

// Service сервис настроек расписания. Собирает итоговую immutable
// SchedulingConfig для движка: хранимые переопределения владельца
// поверх сервисных умолчаний из конфигурационного файла.
type Service struct {
	configRepo ConfigRepository
	defaults   domain.SchedulingConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(configRepo ConfigRepository, defaults domain.SchedulingConfig, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// ResolveSchedulingConfig возвращает действующую конфигурацию движка для
// владельца. Владелец без своей записи получает сервисные умолчания.
func (s *Service) ResolveSchedulingConfig(ctx context.Context, owner domain.OwnerRef) (domain.SchedulingConfig, error) {
	stored, err := s.configRepo.GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return s.defaults, nil
		}
		s.logger.Error("ResolveSchedulingConfig: repository error for owner=%s/%s: %v", owner.Kind, owner.ID, err)
		return domain.SchedulingConfig{}, fmt.Errorf("%w: ResolveSchedulingConfig - repository error: %v", ErrInternal, err)
	}

	return stored.ToSchedulingConfig(s.defaults), nil
}

// GetOwnerConfig возвращает действующие настройки владельца для API.
// Если своей записи нет, отдаются умолчания с пометкой isDefault.
func (s *Service) GetOwnerConfig(ctx context.Context, owner domain.OwnerRef) (*models.ConfigResponse, error) {
	s.logger.Info("GetOwnerConfig: fetching config for owner=%s/%s", owner.Kind, owner.ID)

	stored, err := s.configRepo.GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return models.FromDefaults(owner, s.defaults), nil
		}
		s.logger.Error("GetOwnerConfig: repository error for owner=%s/%s: %v", owner.Kind, owner.ID, err)
		return nil, fmt.Errorf("%w: GetOwnerConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(stored), nil
}

// UpdateOwnerConfig частично обновляет настройки владельца.
// Первое обновление создает запись из умолчаний плюс переданные поля.
func (s *Service) UpdateOwnerConfig(ctx context.Context, owner domain.OwnerRef, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateOwnerConfig: updating config for owner=%s/%s", owner.Kind, owner.ID)

	current, err := s.configRepo.GetByOwner(ctx, owner)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateOwnerConfig: repository error for owner=%s/%s: %v", owner.Kind, owner.ID, err)
			return nil, fmt.Errorf("%w: UpdateOwnerConfig - repository error: %v", ErrInternal, err)
		}
		current = domain.FromSchedulingConfig(owner, s.defaults)
	}

	req.ApplyToConfig(current)

	if err := s.validateConfig(current); err != nil {
		s.logger.Warn("UpdateOwnerConfig: validation failed for owner=%s/%s: %v", owner.Kind, owner.ID, err)
		return nil, err
	}

	updated, err := s.configRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("UpdateOwnerConfig: repository error for owner=%s/%s: %v", owner.Kind, owner.ID, err)
		return nil, fmt.Errorf("%w: UpdateOwnerConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOwnerConfig: successfully updated config for owner=%s/%s", owner.Kind, owner.ID)
	return models.FromDomainConfig(updated), nil
}

// ResetOwnerConfig удаляет запись владельца, возвращая его к умолчаниям
func (s *Service) ResetOwnerConfig(ctx context.Context, owner domain.OwnerRef) error {
	s.logger.Info("ResetOwnerConfig: resetting config for owner=%s/%s", owner.Kind, owner.ID)

	if err := s.configRepo.Delete(ctx, owner); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return ErrConfigNotFound
		}
		s.logger.Error("ResetOwnerConfig: repository error for owner=%s/%s: %v", owner.Kind, owner.ID, err)
		return fmt.Errorf("%w: ResetOwnerConfig - repository error: %v", ErrInternal, err)
	}

	return nil
}

// validateConfig проверяет диапазоны значений настроек
func (s *Service) validateConfig(c *domain.OwnerScheduleConfig) error {
	if c.BufferMinutes < 0 || c.BufferMinutes > 480 {
		return fmt.Errorf("%w: bufferMinutes must be between 0 and 480", ErrInvalidInput)
	}
	if c.MaxDateRangeDays <= 0 || c.MaxDateRangeDays > 3650 {
		return fmt.Errorf("%w: maxDateRangeDays must be between 1 and 3650", ErrInvalidInput)
	}
	if c.MinPeriodMinutes <= 0 || c.MinPeriodMinutes > 1440 {
		return fmt.Errorf("%w: minPeriodMinutes must be between 1 and 1440", ErrInvalidInput)
	}
	if c.MaxPeriodMinutes < c.MinPeriodMinutes || c.MaxPeriodMinutes > 1440 {
		return fmt.Errorf("%w: maxPeriodMinutes must be between minPeriodMinutes and 1440", ErrInvalidInput)
	}
	if c.MaxPeriodsPerBooking <= 0 || c.MaxPeriodsPerBooking > 100 {
		return fmt.Errorf("%w: maxPeriodsPerBooking must be between 1 and 100", ErrInvalidInput)
	}
	return nil
}
