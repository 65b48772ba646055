package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b BookingType
		want bool
	}{
		{"availability vs availability", TypeAvailability, TypeAvailability, false},
		{"availability vs appointment", TypeAvailability, TypeAppointment, false},
		{"availability vs blocked", TypeAvailability, TypeBlocked, false},
		{"appointment vs appointment", TypeAppointment, TypeAppointment, true},
		{"appointment vs blocked", TypeAppointment, TypeBlocked, true},
		{"blocked vs blocked", TypeBlocked, TypeBlocked, true},
		{"custom vs appointment", TypeCustom, TypeAppointment, false},
		{"custom vs custom", TypeCustom, TypeCustom, false},
		{"custom vs blocked", TypeCustom, TypeBlocked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypesConflict(tt.a, tt.b))
			// Политика симметрична
			assert.Equal(t, tt.want, TypesConflict(tt.b, tt.a))
		})
	}
}

func TestRuleSetMerge(t *testing.T) {
	defaults := DefaultSchedulingConfig().Rules

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		merged := defaults.Merge(RuleOverrides{})
		assert.Equal(t, defaults, merged)
	})

	t.Run("explicit disable wins over default enable", func(t *testing.T) {
		merged := defaults.Merge(RuleOverrides{
			NoOverlap: &NoOverlapRule{Enabled: false},
		})
		assert.False(t, merged.NoOverlap.Enabled)
	})

	t.Run("enabled override without appliesTo inherits default set", func(t *testing.T) {
		merged := defaults.Merge(RuleOverrides{
			NoOverlap: &NoOverlapRule{Enabled: true},
		})
		assert.Equal(t, []BookingType{TypeAppointment, TypeBlocked}, merged.NoOverlap.AppliesTo)
	})

	t.Run("custom appliesTo replaces default set", func(t *testing.T) {
		merged := defaults.Merge(RuleOverrides{
			NoOverlap: &NoOverlapRule{Enabled: true, AppliesTo: []BookingType{TypeCustom}},
		})
		assert.Equal(t, []BookingType{TypeCustom}, merged.NoOverlap.AppliesTo)
	})

	t.Run("working hours override", func(t *testing.T) {
		merged := defaults.Merge(RuleOverrides{
			WorkingHours: &WorkingHoursRule{Enabled: true, Start: "09:00", End: "18:00"},
		})
		assert.True(t, merged.WorkingHours.Enabled)
		assert.Equal(t, "09:00", merged.WorkingHours.Start.String())
	})
}
