package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// SchedulingConfig is the one immutable configuration value threaded into
// the conflict detection service, the validation pipeline and the
// availability engine. Built once per request from the owner's stored
// overrides merged over the service defaults - no hidden config reads
// inside the pure functions.
type SchedulingConfig struct {
	// Conflict detection
	ConflictDetectionEnabled bool // false выключает детекцию целиком, поверх любых правил
	BufferMinutes            int  // обязательный зазор вокруг существующих бронирований

	// Validation
	RequireFutureDates      bool
	MaxDateRangeDays        int
	MinPeriodMinutes        int
	MaxPeriodMinutes        int
	MaxPeriodsPerBooking    int
	AllowOverlappingPeriods bool // разрешить пересечения периодов внутри одного бронирования

	// Per-rule defaults
	Rules RuleSet
}

// DefaultSchedulingConfig возвращает конфигурацию со значениями по умолчанию
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		ConflictDetectionEnabled: true,
		BufferMinutes:            DefaultBufferMinutes,
		RequireFutureDates:       false,
		MaxDateRangeDays:         DefaultMaxDateRangeDays,
		MinPeriodMinutes:         DefaultMinPeriodMinutes,
		MaxPeriodMinutes:         DefaultMaxPeriodMinutes,
		MaxPeriodsPerBooking:     DefaultMaxPeriodsPerBooking,
		AllowOverlappingPeriods:  false,
		Rules: RuleSet{
			NoOverlap: NoOverlapRule{
				Enabled:   true,
				AppliesTo: []BookingType{TypeAppointment, TypeBlocked},
			},
		},
	}
}

// RuleSet настройки именованных правил валидации
type RuleSet struct {
	WorkingHours WorkingHoursRule
	MaxDuration  MaxDurationRule
	NoWeekends   NoWeekendsRule
	NoOverlap    NoOverlapRule
}

// WorkingHoursRule правило: каждый период должен целиком помещаться в [Start, End]
type WorkingHoursRule struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
}

// MaxDurationRule правило: длительность каждого периода не больше Minutes
type MaxDurationRule struct {
	Enabled bool
	Minutes int
}

// NoWeekendsRule правило: дата начала бронирования и датированные периоды
// не должны попадать на отключенные дни недели
type NoWeekendsRule struct {
	Enabled  bool
	Saturday bool // true = суббота запрещена
	Sunday   bool // true = воскресенье запрещено
}

// NoOverlapRule правило: кандидат не должен пересекаться с существующими
// бронированиями. AppliesTo ограничивает, к каким типам кандидата правило
// вообще применяется - проверяется до Type Policy.
type NoOverlapRule struct {
	Enabled   bool
	AppliesTo []BookingType
}

// RuleOverrides поштучные переопределения правил со стороны кандидата.
// nil = правило не упомянуто, действует значение из RuleSet по умолчанию.
// Упомянутое правило с Enabled=false отключается, даже если умолчание его включает.
type RuleOverrides struct {
	WorkingHours *WorkingHoursRule
	MaxDuration  *MaxDurationRule
	NoWeekends   *NoWeekendsRule
	NoOverlap    *NoOverlapRule
}

// Merge накладывает переопределения кандидата поверх набора по умолчанию
func (r RuleSet) Merge(overrides RuleOverrides) RuleSet {
	merged := r

	if overrides.WorkingHours != nil {
		merged.WorkingHours = *overrides.WorkingHours
	}
	if overrides.MaxDuration != nil {
		merged.MaxDuration = *overrides.MaxDuration
	}
	if overrides.NoWeekends != nil {
		merged.NoWeekends = *overrides.NoWeekends
	}
	if overrides.NoOverlap != nil {
		rule := *overrides.NoOverlap
		// appliesTo кандидата без собственного списка наследует умолчание
		if rule.Enabled && len(rule.AppliesTo) == 0 {
			rule.AppliesTo = r.NoOverlap.AppliesTo
		}
		merged.NoOverlap = rule
	}

	return merged
}
