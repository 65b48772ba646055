package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Config конфигурация сервиса, загружается из toml файла
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	Name            string `toml:"name"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// SchedulingConfig дефолты движка планирования на уровне сервиса.
// Владельцы переопределяют их персональной конфигурацией через API.
type SchedulingConfig struct {
	ConflictDetectionEnabled bool `toml:"conflict_detection_enabled"`
	BufferMinutes            int  `toml:"buffer_minutes"`
	RequireFutureDates       bool `toml:"require_future_dates"`
	MaxDateRangeDays         int  `toml:"max_date_range_days"`
	MinPeriodMinutes         int  `toml:"min_period_minutes"`
	MaxPeriodMinutes         int  `toml:"max_period_minutes"`
	MaxPeriodsPerBooking     int  `toml:"max_periods_per_booking"`
	AllowOverlappingPeriods  bool `toml:"allow_overlapping_periods"`

	Rules RulesConfig `toml:"rules"`
}

// RulesConfig дефолты именованных правил валидации.
// Кандидаты переопределяют их поштучно в теле запроса.
type RulesConfig struct {
	WorkingHours WorkingHoursConfig `toml:"working_hours"`
	MaxDuration  MaxDurationConfig  `toml:"max_duration"`
	NoWeekends   NoWeekendsConfig   `toml:"no_weekends"`
	NoOverlap    NoOverlapConfig    `toml:"no_overlap"`
}

// WorkingHoursConfig правило рабочих часов
type WorkingHoursConfig struct {
	Enabled bool   `toml:"enabled"`
	Start   string `toml:"start"` // "09:00"
	End     string `toml:"end"`   // "18:00"
}

// MaxDurationConfig правило максимальной длительности периода
type MaxDurationConfig struct {
	Enabled bool `toml:"enabled"`
	Minutes int  `toml:"minutes"`
}

// NoWeekendsConfig правило запрета выходных дней
type NoWeekendsConfig struct {
	Enabled  bool `toml:"enabled"`
	Saturday bool `toml:"saturday"`
	Sunday   bool `toml:"sunday"`
}

// NoOverlapConfig правило запрета пересечений.
// Пустой applies_to при включенном правиле наследует {appointment, blocked}.
type NoOverlapConfig struct {
	Enabled   bool     `toml:"enabled"`
	AppliesTo []string `toml:"applies_to"`
}

// ToDomain собирает domain конфигурацию вместе с набором правил по умолчанию
func (s SchedulingConfig) ToDomain() (domain.SchedulingConfig, error) {
	cfg := domain.DefaultSchedulingConfig()
	cfg.ConflictDetectionEnabled = s.ConflictDetectionEnabled
	cfg.BufferMinutes = s.BufferMinutes
	cfg.RequireFutureDates = s.RequireFutureDates
	cfg.MaxDateRangeDays = s.MaxDateRangeDays
	cfg.MinPeriodMinutes = s.MinPeriodMinutes
	cfg.MaxPeriodMinutes = s.MaxPeriodMinutes
	cfg.MaxPeriodsPerBooking = s.MaxPeriodsPerBooking
	cfg.AllowOverlappingPeriods = s.AllowOverlappingPeriods

	rules, err := s.Rules.toDomain()
	if err != nil {
		return domain.SchedulingConfig{}, err
	}
	cfg.Rules = rules

	return cfg, nil
}

func (r RulesConfig) toDomain() (domain.RuleSet, error) {
	rules := domain.RuleSet{
		WorkingHours: domain.WorkingHoursRule{
			Enabled: r.WorkingHours.Enabled,
			Start:   types.TimeString(r.WorkingHours.Start),
			End:     types.TimeString(r.WorkingHours.End),
		},
		MaxDuration: domain.MaxDurationRule{
			Enabled: r.MaxDuration.Enabled,
			Minutes: r.MaxDuration.Minutes,
		},
		NoWeekends: domain.NoWeekendsRule{
			Enabled:  r.NoWeekends.Enabled,
			Saturday: r.NoWeekends.Saturday,
			Sunday:   r.NoWeekends.Sunday,
		},
		NoOverlap: domain.NoOverlapRule{
			Enabled: r.NoOverlap.Enabled,
		},
	}

	if rules.WorkingHours.Enabled {
		if err := rules.WorkingHours.Start.Validate(); err != nil {
			return domain.RuleSet{}, fmt.Errorf("scheduling.rules.working_hours.start: %w", err)
		}
		if err := rules.WorkingHours.End.Validate(); err != nil {
			return domain.RuleSet{}, fmt.Errorf("scheduling.rules.working_hours.end: %w", err)
		}
	}

	for _, name := range r.NoOverlap.AppliesTo {
		bookingType := domain.BookingType(name)
		if !bookingType.IsValid() {
			return domain.RuleSet{}, fmt.Errorf("scheduling.rules.no_overlap.applies_to: unknown booking type %q", name)
		}
		rules.NoOverlap.AppliesTo = append(rules.NoOverlap.AppliesTo, bookingType)
	}

	// Включенное правило без собственного списка получает стандартный набор
	if rules.NoOverlap.Enabled && len(rules.NoOverlap.AppliesTo) == 0 {
		rules.NoOverlap.AppliesTo = []domain.BookingType{domain.TypeAppointment, domain.TypeBlocked}
	}

	return rules, nil
}

// Load читает конфигурацию из toml файла.
// Отсутствующие в файле ключи сохраняют значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if cfg.Server.HTTPPort <= 0 {
		return nil, fmt.Errorf("load config %s: invalid http_port %d", path, cfg.Server.HTTPPort)
	}

	if _, err := cfg.Scheduling.ToDomain(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	schedDefaults := domain.DefaultSchedulingConfig()

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "schedule_service",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "smc-schedule-service",
			Path:        "/metrics",
		},
		Scheduling: SchedulingConfig{
			ConflictDetectionEnabled: schedDefaults.ConflictDetectionEnabled,
			BufferMinutes:            schedDefaults.BufferMinutes,
			RequireFutureDates:       schedDefaults.RequireFutureDates,
			MaxDateRangeDays:         schedDefaults.MaxDateRangeDays,
			MinPeriodMinutes:         schedDefaults.MinPeriodMinutes,
			MaxPeriodMinutes:         schedDefaults.MaxPeriodMinutes,
			MaxPeriodsPerBooking:     schedDefaults.MaxPeriodsPerBooking,
			AllowOverlappingPeriods:  schedDefaults.AllowOverlappingPeriods,
			Rules:                    rulesFromDomain(schedDefaults.Rules),
		},
	}
}

func rulesFromDomain(rules domain.RuleSet) RulesConfig {
	appliesTo := make([]string, len(rules.NoOverlap.AppliesTo))
	for i, t := range rules.NoOverlap.AppliesTo {
		appliesTo[i] = string(t)
	}

	return RulesConfig{
		WorkingHours: WorkingHoursConfig{
			Enabled: rules.WorkingHours.Enabled,
			Start:   string(rules.WorkingHours.Start),
			End:     string(rules.WorkingHours.End),
		},
		MaxDuration: MaxDurationConfig{
			Enabled: rules.MaxDuration.Enabled,
			Minutes: rules.MaxDuration.Minutes,
		},
		NoWeekends: NoWeekendsConfig{
			Enabled:  rules.NoWeekends.Enabled,
			Saturday: rules.NoWeekends.Saturday,
			Sunday:   rules.NoWeekends.Sunday,
		},
		NoOverlap: NoOverlapConfig{
			Enabled:   rules.NoOverlap.Enabled,
			AppliesTo: appliesTo,
		},
	}
}
