package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     types.TimeString
		want                           bool
	}{
		{"partial overlap", "09:00", "11:00", "10:00", "12:00", true},
		{"contained", "09:00", "17:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"touching boundaries do not overlap", "09:00", "10:00", "10:00", "11:00", false},
		{"touching reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.endB, tt.startA, tt.endA))
		})
	}
}

func TestExpandBuffer(t *testing.T) {
	tests := []struct {
		name          string
		start, end    types.TimeString
		buffer        int
		wantStart     types.TimeString
		wantEnd       types.TimeString
	}{
		{"zero buffer unchanged", "10:00", "11:00", 0, "10:00", "11:00"},
		{"negative buffer clamped to zero", "10:00", "11:00", -15, "10:00", "11:00"},
		{"symmetric expansion", "10:00", "11:00", 15, "09:45", "11:15"},
		{"clamped at start of day", "00:10", "01:00", 30, "00:00", "01:30"},
		{"clamped at end of day", "23:00", "23:50", 30, "22:30", "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := ExpandBuffer(tt.start, tt.end, tt.buffer)
			assert.Equal(t, tt.wantStart, gotStart)
			assert.Equal(t, tt.wantEnd, gotEnd)
		})
	}
}

func TestExpandBufferMakesTouchingConflict(t *testing.T) {
	// Буфер 10 минут: бронирование 10:00-11:00 теперь мешает кандидату 11:00-12:00
	start, end := ExpandBuffer("10:00", "11:00", 10)
	assert.True(t, Overlaps(start, end, "11:00", "12:00"))
	assert.False(t, Overlaps("10:00", "11:00", "11:00", "12:00"))
}
