package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccursOnDaily(t *testing.T) {
	pattern := RecurrencePattern{Kind: RecurrenceDaily}
	start := date(2024, 1, 1)
	end := ptr.Ptr(date(2024, 1, 31))

	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 1)))
	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 15)))
	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 31)))

	// За пределами диапазона
	assert.False(t, OccursOn(pattern, start, end, date(2023, 12, 31)))
	assert.False(t, OccursOn(pattern, start, end, date(2024, 2, 1)))

	// Открытый диапазон - любая дата после начала
	assert.True(t, OccursOn(pattern, start, nil, date(2030, 6, 15)))
}

func TestOccursOnWeekly(t *testing.T) {
	pattern := RecurrencePattern{
		Kind:     RecurrenceWeekly,
		Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}
	start := date(2024, 1, 1) // понедельник
	end := ptr.Ptr(date(2024, 12, 31))

	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 1)))  // Mon
	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 3)))  // Wed
	assert.True(t, OccursOn(pattern, start, end, date(2024, 1, 5)))  // Fri
	assert.False(t, OccursOn(pattern, start, end, date(2024, 1, 2))) // Tue
	assert.False(t, OccursOn(pattern, start, end, date(2024, 1, 7))) // Sun
}

func TestOccursOnWeeklyWithInterval(t *testing.T) {
	// Раз в две недели по понедельникам, начало 2024-01-01 (понедельник)
	pattern := RecurrencePattern{
		Kind:          RecurrenceWeekly,
		Weekdays:      []time.Weekday{time.Monday},
		IntervalWeeks: 2,
	}
	start := date(2024, 1, 1)

	assert.True(t, OccursOn(pattern, start, nil, date(2024, 1, 1)))   // неделя 0
	assert.False(t, OccursOn(pattern, start, nil, date(2024, 1, 8)))  // неделя 1
	assert.True(t, OccursOn(pattern, start, nil, date(2024, 1, 15)))  // неделя 2
	assert.False(t, OccursOn(pattern, start, nil, date(2024, 1, 22))) // неделя 3
	assert.True(t, OccursOn(pattern, start, nil, date(2024, 1, 29)))  // неделя 4
}

func TestOccursOnWeeklyIntervalCountsWeeksNotDays(t *testing.T) {
	// Начало в четверг: вторник той же календарной недели - это всё ещё неделя 0
	pattern := RecurrencePattern{
		Kind:          RecurrenceWeekly,
		Weekdays:      []time.Weekday{time.Tuesday},
		IntervalWeeks: 2,
	}
	start := date(2024, 1, 4) // четверг

	// Вторник 2024-01-09 - следующая календарная неделя, неделя 1 -> не попадает
	assert.False(t, OccursOn(pattern, start, nil, date(2024, 1, 9)))
	// Вторник 2024-01-16 - неделя 2 -> попадает
	assert.True(t, OccursOn(pattern, start, nil, date(2024, 1, 16)))
}

func TestOccursOnWeeklyEmptyWeekdaySet(t *testing.T) {
	pattern := RecurrencePattern{Kind: RecurrenceWeekly}
	assert.False(t, OccursOn(pattern, date(2024, 1, 1), nil, date(2024, 1, 1)))
}

func TestOccursOnMonthly(t *testing.T) {
	pattern := RecurrencePattern{Kind: RecurrenceMonthly, DayOfMonth: 15}
	start := date(2024, 1, 1)

	assert.True(t, OccursOn(pattern, start, nil, date(2024, 1, 15)))
	assert.True(t, OccursOn(pattern, start, nil, date(2024, 6, 15)))
	assert.False(t, OccursOn(pattern, start, nil, date(2024, 1, 14)))

	// DayOfMonth не задан - берется день даты начала
	defaulted := RecurrencePattern{Kind: RecurrenceMonthly}
	assert.True(t, OccursOn(defaulted, date(2024, 1, 10), nil, date(2024, 3, 10)))
	assert.False(t, OccursOn(defaulted, date(2024, 1, 10), nil, date(2024, 3, 11)))
}

func TestOccursOnUnknownKindFailsClosed(t *testing.T) {
	pattern := RecurrencePattern{Kind: RecurrenceKind("yearly")}
	assert.False(t, OccursOn(pattern, date(2024, 1, 1), nil, date(2024, 1, 1)))

	none := RecurrencePattern{Kind: RecurrenceNone}
	assert.False(t, OccursOn(none, date(2024, 1, 1), nil, date(2024, 1, 1)))
}

func TestOccursOnIsPure(t *testing.T) {
	pattern := RecurrencePattern{
		Kind:     RecurrenceWeekly,
		Weekdays: []time.Weekday{time.Wednesday},
	}
	start := date(2024, 1, 1)
	end := ptr.Ptr(date(2024, 12, 31))

	first := OccursOn(pattern, start, end, date(2024, 1, 3))
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, OccursOn(pattern, start, end, date(2024, 1, 3)))
	}
}

func TestRecurrencePatternIsWellFormed(t *testing.T) {
	tests := []struct {
		name    string
		pattern RecurrencePattern
		want    bool
	}{
		{"none", RecurrencePattern{Kind: RecurrenceNone}, true},
		{"daily", RecurrencePattern{Kind: RecurrenceDaily}, true},
		{"weekly with days", RecurrencePattern{Kind: RecurrenceWeekly, Weekdays: []time.Weekday{time.Monday}}, true},
		{"weekly without days", RecurrencePattern{Kind: RecurrenceWeekly}, false},
		{"monthly valid day", RecurrencePattern{Kind: RecurrenceMonthly, DayOfMonth: 31}, true},
		{"monthly day too large", RecurrencePattern{Kind: RecurrenceMonthly, DayOfMonth: 32}, false},
		{"unknown kind", RecurrencePattern{Kind: RecurrenceKind("hourly")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.IsWellFormed())
		})
	}
}
