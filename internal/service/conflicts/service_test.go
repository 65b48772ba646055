package conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (r *stubRepo) GetByOwnerWithFilter(_ context.Context, _ domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	r.calls++
	return r.bookings, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testOwner = domain.OwnerRef{Kind: "user", ID: "42"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func defaultAppliesTo() []domain.BookingType {
	return []domain.BookingType{domain.TypeAppointment, domain.TypeBlocked}
}

// weeklyBooking Mon/Wed/Fri 08:00-12:00 и 14:00-18:00 на весь 2024 год
func weeklyBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		Owner:       testOwner,
		Name:        "weekly shift",
		StartDate:   date(2024, 1, 1),
		EndDate:     ptr.Ptr(date(2024, 12, 31)),
		IsRecurring: true,
		Recurrence: domain.RecurrencePattern{
			Kind:     domain.RecurrenceWeekly,
			Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		Type:     domain.TypeAppointment,
		IsActive: true,
		Periods: []domain.Period{
			{StartTime: "08:00", EndTime: "12:00"},
			{StartTime: "14:00", EndTime: "18:00"},
		},
	}
}

func candidateOn(day time.Time, start, end types.TimeString) *domain.CandidateBooking {
	return &domain.CandidateBooking{
		Owner:     testOwner,
		Name:      "candidate",
		StartDate: day,
		Type:      domain.TypeAppointment,
		IsActive:  true,
		Periods: []domain.Period{
			{Date: ptr.Ptr(day), StartTime: start, EndTime: end},
		},
	}
}

func newService(bookings ...*domain.Booking) (*Service, *stubRepo) {
	repo := &stubRepo{bookings: bookings}
	return NewService(repo, nopLogger{}), repo
}

func TestFindConflictsRecurringVsSingle(t *testing.T) {
	svc, _ := newService(weeklyBooking())
	cfg := domain.DefaultSchedulingConfig()

	// Среда 2024-01-03, попадает в вечерний период
	got, err := svc.FindConflicts(context.Background(), candidateOn(date(2024, 1, 3), "14:00", "18:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// Воскресенье 2024-01-07 - шаблон не срабатывает
	got, err = svc.FindConflicts(context.Background(), candidateOn(date(2024, 1, 7), "14:00", "18:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)

	// Среда, но время между периодами
	got, err = svc.FindConflicts(context.Background(), candidateOn(date(2024, 1, 3), "12:00", "14:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflictsRecurringCandidate(t *testing.T) {
	svc, _ := newService(weeklyBooking())
	cfg := domain.DefaultSchedulingConfig()

	// Ежедневный кандидат 14:00-18:00 пересекается с Mon/Wed/Fri бронированием
	daily := &domain.CandidateBooking{
		Owner:       testOwner,
		StartDate:   date(2024, 2, 1),
		EndDate:     ptr.Ptr(date(2024, 2, 29)),
		IsRecurring: true,
		Recurrence:  domain.RecurrencePattern{Kind: domain.RecurrenceDaily},
		Type:        domain.TypeAppointment,
		Periods: []domain.Period{
			{StartTime: "14:00", EndTime: "18:00"},
		},
	}

	got, err := svc.FindConflicts(context.Background(), daily, cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Еженедельный кандидат только по воскресеньям не пересекается никогда
	sundays := &domain.CandidateBooking{
		Owner:       testOwner,
		StartDate:   date(2024, 2, 1),
		EndDate:     ptr.Ptr(date(2024, 2, 29)),
		IsRecurring: true,
		Recurrence: domain.RecurrencePattern{
			Kind:     domain.RecurrenceWeekly,
			Weekdays: []time.Weekday{time.Sunday},
		},
		Type: domain.TypeAppointment,
		Periods: []domain.Period{
			{StartTime: "14:00", EndTime: "18:00"},
		},
	}

	got, err = svc.FindConflicts(context.Background(), sundays, cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflictsAvailabilityNeverConflicts(t *testing.T) {
	monday := date(2024, 1, 1)
	availability := &domain.Booking{
		ID:        7,
		Owner:     testOwner,
		StartDate: monday,
		EndDate:   ptr.Ptr(monday),
		Type:      domain.TypeAvailability,
		IsActive:  true,
		Periods: []domain.Period{
			{Date: ptr.Ptr(monday), StartTime: "09:00", EndTime: "17:00"},
		},
	}

	svc, _ := newService(availability)
	cfg := domain.DefaultSchedulingConfig()

	// Appointment поверх availability создается свободно
	got, err := svc.FindConflicts(context.Background(), candidateOn(monday, "10:00", "11:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)

	// И сам availability-кандидат ни с чем не конфликтует
	availCandidate := candidateOn(monday, "09:00", "17:00")
	availCandidate.Type = domain.TypeAvailability
	got, err = svc.FindConflicts(context.Background(), availCandidate, cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflictsBuffer(t *testing.T) {
	monday := date(2024, 1, 1)
	existing := &domain.Booking{
		ID:        3,
		Owner:     testOwner,
		StartDate: monday,
		EndDate:   ptr.Ptr(monday),
		Type:      domain.TypeAppointment,
		IsActive:  true,
		Periods: []domain.Period{
			{Date: ptr.Ptr(monday), StartTime: "10:00", EndTime: "11:00"},
		},
	}

	svc, _ := newService(existing)

	// Без буфера соседний слот 11:00-12:00 не конфликтует
	cfg := domain.DefaultSchedulingConfig()
	got, err := svc.FindConflicts(context.Background(), candidateOn(monday, "11:00", "12:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)

	// С буфером 15 минут - конфликтует
	cfg.BufferMinutes = 15
	got, err = svc.FindConflicts(context.Background(), candidateOn(monday, "11:00", "12:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Отрицательный буфер эквивалентен нулевому
	cfg.BufferMinutes = -30
	got, err = svc.FindConflicts(context.Background(), candidateOn(monday, "11:00", "12:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflictsDisabledGlobally(t *testing.T) {
	svc, repo := newService(weeklyBooking())

	cfg := domain.DefaultSchedulingConfig()
	cfg.ConflictDetectionEnabled = false

	got, err := svc.FindConflicts(context.Background(), candidateOn(date(2024, 1, 3), "14:00", "18:00"), cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
	// Глобальный выключатель срабатывает до любых запросов к хранилищу
	assert.Zero(t, repo.calls)
}

func TestFindConflictsAppliesTo(t *testing.T) {
	svc, _ := newService(weeklyBooking())
	cfg := domain.DefaultSchedulingConfig()

	// Кандидат типа custom не попадает под правило с дефолтным appliesTo
	custom := candidateOn(date(2024, 1, 3), "14:00", "18:00")
	custom.Type = domain.TypeCustom
	got, err := svc.FindConflicts(context.Background(), custom, cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)

	// Но участвует, когда appliesTo явно включает custom и appointment
	got, err = svc.FindConflicts(context.Background(), custom, cfg,
		[]domain.BookingType{domain.TypeAppointment, domain.TypeBlocked, domain.TypeCustom})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindConflictsMultiplePeriodsCountedOnce(t *testing.T) {
	monday := date(2024, 1, 1)
	// Кандидат пересекает оба периода существующего бронирования
	candidate := &domain.CandidateBooking{
		Owner:     testOwner,
		StartDate: monday,
		Type:      domain.TypeAppointment,
		Periods: []domain.Period{
			{Date: ptr.Ptr(monday), StartTime: "08:00", EndTime: "12:00"},
			{Date: ptr.Ptr(monday), StartTime: "14:00", EndTime: "18:00"},
		},
	}

	svc, _ := newService(weeklyBooking())
	got, err := svc.FindConflicts(context.Background(), candidate, domain.DefaultSchedulingConfig(), defaultAppliesTo())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindConflictsSkipsInactive(t *testing.T) {
	b := weeklyBooking()
	b.IsActive = false

	svc, _ := newService(b)
	got, err := svc.FindConflicts(context.Background(), candidateOn(date(2024, 1, 3), "14:00", "18:00"),
		domain.DefaultSchedulingConfig(), defaultAppliesTo())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflictsIdempotent(t *testing.T) {
	svc, _ := newService(weeklyBooking())
	cfg := domain.DefaultSchedulingConfig()
	candidate := candidateOn(date(2024, 1, 3), "14:00", "18:00")

	first, err := svc.FindConflicts(context.Background(), candidate, cfg, defaultAppliesTo())
	require.NoError(t, err)
	second, err := svc.FindConflicts(context.Background(), candidate, cfg, defaultAppliesTo())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
