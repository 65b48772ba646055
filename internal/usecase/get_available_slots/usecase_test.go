package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubAvailability struct {
	slots        []domain.Slot
	windowCalls  int
	bookableCall int
	gotDayStart  types.TimeString
	gotDuration  int
}

func (s *stubAvailability) SlotsInWindow(_ context.Context, _ domain.OwnerRef, _ time.Time, dayStart, _ types.TimeString, slotDuration, _ int, _ domain.SchedulingConfig) ([]domain.Slot, error) {
	s.windowCalls++
	s.gotDayStart = dayStart
	s.gotDuration = slotDuration
	return s.slots, nil
}

func (s *stubAvailability) BookableSlots(_ context.Context, _ domain.OwnerRef, _ time.Time, slotDuration, _ int, _ domain.SchedulingConfig) ([]domain.Slot, error) {
	s.bookableCall++
	s.gotDuration = slotDuration
	return s.slots, nil
}

type stubResolver struct{}

func (stubResolver) ResolveSchedulingConfig(_ context.Context, _ domain.OwnerRef) (domain.SchedulingConfig, error) {
	return domain.DefaultSchedulingConfig(), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		OwnerKind:           "user",
		OwnerID:             "42",
		Date:                time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		DayStart:            "09:00",
		DayEnd:              "13:00",
		SlotDurationMinutes: 60,
	}
}

func TestExecuteWindowMode(t *testing.T) {
	engine := &stubAvailability{slots: []domain.Slot{
		{StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60, Available: true},
		{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60, Available: false},
	}}
	uc := NewUseCase(engine, stubResolver{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пустой mode по умолчанию означает window
	assert.Equal(t, 1, engine.windowCalls)
	assert.Zero(t, engine.bookableCall)
	assert.Equal(t, types.TimeString("09:00"), engine.gotDayStart)

	assert.Equal(t, "2024-06-10", resp.Date)
	assert.Equal(t, ModeWindow, resp.Mode)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
}

func TestExecuteBookableMode(t *testing.T) {
	engine := &stubAvailability{}
	uc := NewUseCase(engine, stubResolver{}, nopLogger{})

	req := validRequest()
	req.Mode = ModeBookable
	// В режиме bookable границы дня не нужны
	req.DayStart = ""
	req.DayEnd = ""

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, engine.bookableCall)
	assert.Zero(t, engine.windowCalls)
	assert.Empty(t, resp.Slots)
}

func TestExecuteInvalidRequest(t *testing.T) {
	uc := NewUseCase(&stubAvailability{}, stubResolver{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing owner", func(req *Request) { req.OwnerKind = "" }},
		{"missing date", func(req *Request) { req.Date = time.Time{} }},
		{"unknown mode", func(req *Request) { req.Mode = "open" }},
		{"duration too small", func(req *Request) { req.SlotDurationMinutes = 1 }},
		{"duration too large", func(req *Request) { req.SlotDurationMinutes = 999 }},
		{"window mode without day start", func(req *Request) { req.DayStart = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
