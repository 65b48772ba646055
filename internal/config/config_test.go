package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
shutdown_timeout = 5

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
name = "schedule"
ssl_mode = "require"

[logs]
file = "/var/log/app.log"
level = "debug"

[metrics]
enabled = true
service_name = "schedule-svc"
path = "/metrics"

[scheduling]
buffer_minutes = 10
require_future_dates = true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "host=db.internal port=5433 user=svc password=secret dbname=schedule sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10, cfg.Scheduling.BufferMinutes)
	assert.True(t, cfg.Scheduling.RequireFutureDates)
}

func TestLoadDefaults(t *testing.T) {
	// Минимальный файл: отсутствующие ключи получают умолчания
	path := writeConfig(t, `
[database]
password = "secret"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, domain.DefaultMaxDateRangeDays, cfg.Scheduling.MaxDateRangeDays)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
}

func TestSchedulingToDomain(t *testing.T) {
	sched := SchedulingConfig{
		ConflictDetectionEnabled: true,
		BufferMinutes:            15,
		MaxDateRangeDays:         30,
		MinPeriodMinutes:         5,
		MaxPeriodMinutes:         120,
		MaxPeriodsPerBooking:     10,
		Rules: RulesConfig{
			WorkingHours: WorkingHoursConfig{Enabled: true, Start: "09:00", End: "18:00"},
			MaxDuration:  MaxDurationConfig{Enabled: true, Minutes: 90},
			NoOverlap:    NoOverlapConfig{Enabled: true, AppliesTo: []string{"appointment", "custom"}},
		},
	}

	cfg, err := sched.ToDomain()

	require.NoError(t, err)
	assert.Equal(t, 15, cfg.BufferMinutes)
	assert.Equal(t, 30, cfg.MaxDateRangeDays)
	assert.True(t, cfg.Rules.WorkingHours.Enabled)
	assert.Equal(t, types.TimeString("09:00"), cfg.Rules.WorkingHours.Start)
	assert.Equal(t, 90, cfg.Rules.MaxDuration.Minutes)
	assert.Equal(t, []domain.BookingType{domain.TypeAppointment, domain.TypeCustom}, cfg.Rules.NoOverlap.AppliesTo)
}

func TestSchedulingToDomainInheritsAppliesTo(t *testing.T) {
	// Включенное правило без собственного applies_to получает стандартный набор
	sched := SchedulingConfig{
		Rules: RulesConfig{
			NoOverlap: NoOverlapConfig{Enabled: true},
		},
	}

	cfg, err := sched.ToDomain()

	require.NoError(t, err)
	assert.Equal(t, []domain.BookingType{domain.TypeAppointment, domain.TypeBlocked}, cfg.Rules.NoOverlap.AppliesTo)
}

func TestSchedulingToDomainInvalidWorkingHours(t *testing.T) {
	sched := SchedulingConfig{
		Rules: RulesConfig{
			WorkingHours: WorkingHoursConfig{Enabled: true, Start: "9am", End: "18:00"},
		},
	}

	_, err := sched.ToDomain()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduling.rules.working_hours.start")
}

func TestLoadRules(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "secret"

[scheduling.rules.working_hours]
enabled = true
start = "08:30"
end = "17:00"

[scheduling.rules.no_weekends]
enabled = true
saturday = true
sunday = false

[scheduling.rules.no_overlap]
enabled = true
applies_to = ["appointment"]
`)

	cfg, err := Load(path)

	require.NoError(t, err)

	domainCfg, err := cfg.Scheduling.ToDomain()
	require.NoError(t, err)
	assert.True(t, domainCfg.Rules.WorkingHours.Enabled)
	assert.Equal(t, types.TimeString("08:30"), domainCfg.Rules.WorkingHours.Start)
	assert.Equal(t, types.TimeString("17:00"), domainCfg.Rules.WorkingHours.End)
	assert.True(t, domainCfg.Rules.NoWeekends.Saturday)
	assert.False(t, domainCfg.Rules.NoWeekends.Sunday)
	assert.Equal(t, []domain.BookingType{domain.TypeAppointment}, domainCfg.Rules.NoOverlap.AppliesTo)
	// Правило, не упомянутое в файле, сохраняет значение по умолчанию
	assert.False(t, domainCfg.Rules.MaxDuration.Enabled)
}

func TestLoadRulesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "secret"
`)

	cfg, err := Load(path)

	require.NoError(t, err)

	domainCfg, err := cfg.Scheduling.ToDomain()
	require.NoError(t, err)
	assert.True(t, domainCfg.Rules.NoOverlap.Enabled)
	assert.Equal(t, []domain.BookingType{domain.TypeAppointment, domain.TypeBlocked}, domainCfg.Rules.NoOverlap.AppliesTo)
}

func TestLoadRulesUnknownBookingType(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "secret"

[scheduling.rules.no_overlap]
enabled = true
applies_to = ["meeting"]
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown booking type")
}
