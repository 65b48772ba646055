package schedcfg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"owner_kind",
	"owner_id",
	"conflict_detection_enabled",
	"buffer_minutes",
	"require_future_dates",
	"max_date_range_days",
	"min_period_minutes",
	"max_period_minutes",
	"max_periods_per_booking",
	"allow_overlapping_periods",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания владельцев
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwner получает конфигурацию владельца.
// Если записи нет, возвращает ErrConfigNotFound - вызывающая сторона
// подставляет дефолты сервиса.
func (r *Repository) GetByOwner(ctx context.Context, owner domain.OwnerRef) (*domain.OwnerScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("owner_schedule_configs").
		Where(squirrel.Eq{"owner_kind": owner.Kind}).
		Where(squirrel.Eq{"owner_id": owner.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...))
}

// Upsert создает или обновляет конфигурацию владельца
func (r *Repository) Upsert(ctx context.Context, config *domain.OwnerScheduleConfig) (*domain.OwnerScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("owner_schedule_configs").
		Columns(
			"owner_kind",
			"owner_id",
			"conflict_detection_enabled",
			"buffer_minutes",
			"require_future_dates",
			"max_date_range_days",
			"min_period_minutes",
			"max_period_minutes",
			"max_periods_per_booking",
			"allow_overlapping_periods",
		).
		Values(
			config.Owner.Kind,
			config.Owner.ID,
			config.ConflictDetectionEnabled,
			config.BufferMinutes,
			config.RequireFutureDates,
			config.MaxDateRangeDays,
			config.MinPeriodMinutes,
			config.MaxPeriodMinutes,
			config.MaxPeriodsPerBooking,
			config.AllowOverlappingPeriods,
		).
		Suffix(`ON CONFLICT (owner_kind, owner_id) DO UPDATE SET
			conflict_detection_enabled = EXCLUDED.conflict_detection_enabled,
			buffer_minutes = EXCLUDED.buffer_minutes,
			require_future_dates = EXCLUDED.require_future_dates,
			max_date_range_days = EXCLUDED.max_date_range_days,
			min_period_minutes = EXCLUDED.min_period_minutes,
			max_period_minutes = EXCLUDED.max_period_minutes,
			max_periods_per_booking = EXCLUDED.max_periods_per_booking,
			allow_overlapping_periods = EXCLUDED.allow_overlapping_periods,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию владельца, возвращая его на дефолты сервиса
func (r *Repository) Delete(ctx context.Context, owner domain.OwnerRef) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("owner_schedule_configs").
		Where(squirrel.Eq{"owner_kind": owner.Kind}).
		Where(squirrel.Eq{"owner_id": owner.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

func (r *Repository) scanConfig(row *sql.Row) (*domain.OwnerScheduleConfig, error) {
	var config domain.OwnerScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.Owner.Kind,
		&config.Owner.ID,
		&config.ConflictDetectionEnabled,
		&config.BufferMinutes,
		&config.RequireFutureDates,
		&config.MaxDateRangeDays,
		&config.MinPeriodMinutes,
		&config.MaxPeriodMinutes,
		&config.MaxPeriodsPerBooking,
		&config.AllowOverlappingPeriods,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanConfig: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
