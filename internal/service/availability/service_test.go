package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/conflicts"
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

var testDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func dayBooking(id int64, bookingType domain.BookingType, day time.Time, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		Owner:     testOwner,
		StartDate: day,
		EndDate:   ptr.Ptr(day),
		Type:      bookingType,
		IsActive:  true,
		Periods: []domain.Period{
			{Date: ptr.Ptr(day), StartTime: start, EndTime: end},
		},
	}
}

func newService(bookings ...*domain.Booking) (*Service, *stubRepo) {
	repo := &stubRepo{bookings: bookings}
	checker := conflicts.NewService(nil, nopLogger{})
	return NewService(repo, checker, nopLogger{}), repo
}

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String()+"-"+s.EndTime.String())
	}
	return out
}

func TestSlotsInWindowBlockedHour(t *testing.T) {
	svc, repo := newService(dayBooking(1, domain.TypeBlocked, testDay, "10:00", "11:00"))

	slots, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "09:00", "13:00", 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00"}, slotTimes(slots))
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
	assert.True(t, slots[3].Available)

	// Одна bulk-выборка на день, а не по запросу на слот
	assert.Equal(t, 1, repo.calls)
}

func TestSlotsInWindowBuffer(t *testing.T) {
	svc, _ := newService()

	slots, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "09:00", "12:00", 50, 10, domain.DefaultSchedulingConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00-09:50", "10:00-10:50", "11:00-11:50"}, slotTimes(slots))
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, 50, s.DurationMinutes)
	}
}

func TestSlotsInWindowDegenerateInputs(t *testing.T) {
	svc, repo := newService()

	tests := []struct {
		name     string
		dayStart types.TimeString
		dayEnd   types.TimeString
		duration int
		buffer   int
	}{
		{"inverted window", "17:00", "09:00", 60, 0},
		{"zero duration", "09:00", "17:00", 0, 0},
		{"negative duration", "09:00", "17:00", -30, 0},
		{"invalid day start", "junk", "17:00", 60, 0},
		{"empty window", "09:00", "09:00", 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, tt.dayStart, tt.dayEnd, tt.duration, tt.buffer, domain.DefaultSchedulingConfig())
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}

	// Вырожденные входы отсекаются до обращения к хранилищу
	assert.Zero(t, repo.calls)
}

func TestSlotsInWindowNegativeBufferClamped(t *testing.T) {
	svc, _ := newService()

	slots, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "09:00", "11:00", 60, -15, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00"}, slotTimes(slots))
}

func TestSlotsInWindowRecurringBlock(t *testing.T) {
	// Еженедельная блокировка по понедельникам 12:00-13:00
	weekly := &domain.Booking{
		ID:          5,
		Owner:       testOwner,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
		Recurrence: domain.RecurrencePattern{
			Kind:     domain.RecurrenceWeekly,
			Weekdays: []time.Weekday{time.Monday},
		},
		Type:     domain.TypeBlocked,
		IsActive: true,
		Periods: []domain.Period{
			{StartTime: "12:00", EndTime: "13:00"},
		},
	}

	svc, _ := newService(weekly)

	// 2024-06-10 понедельник - слот 12:00 занят
	slots, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "11:00", "14:00", 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	// 2024-06-11 вторник - весь день свободен
	tuesday := testDay.AddDate(0, 0, 1)
	slots, err = svc.SlotsInWindow(context.Background(), testOwner, tuesday, "11:00", "14:00", 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestBookableSlots(t *testing.T) {
	svc, _ := newService(
		dayBooking(1, domain.TypeAvailability, testDay, "09:00", "12:00"),
		dayBooking(2, domain.TypeAppointment, testDay, "10:00", "11:00"),
	)

	slots, err := svc.BookableSlots(context.Background(), testOwner, testDay, 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"}, slotTimes(slots))
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestBookableSlotsNoAvailability(t *testing.T) {
	// Без заявленных окон доступности бронировать некуда
	svc, _ := newService(dayBooking(1, domain.TypeAppointment, testDay, "10:00", "11:00"))

	slots, err := svc.BookableSlots(context.Background(), testOwner, testDay, 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBookableSlotsMergesWindows(t *testing.T) {
	// Два касающихся окна доступности сливаются в одно
	svc, _ := newService(
		dayBooking(1, domain.TypeAvailability, testDay, "09:00", "11:00"),
		dayBooking(2, domain.TypeAvailability, testDay, "11:00", "13:00"),
	)

	slots, err := svc.BookableSlots(context.Background(), testOwner, testDay, 90, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)

	// 09:00-13:00 одним окном вмещает два слота по 90 минут
	assert.Equal(t, []string{"09:00-10:30", "10:30-12:00"}, slotTimes(slots))
}

func TestBookableSlotsSkipsInactiveAvailability(t *testing.T) {
	avail := dayBooking(1, domain.TypeAvailability, testDay, "09:00", "12:00")
	avail.IsActive = false

	svc, _ := newService(avail)

	slots, err := svc.BookableSlots(context.Background(), testOwner, testDay, 60, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestNextFittingSlotSkipsFullDay(t *testing.T) {
	// Первый день занят целиком - первый свободный слот назавтра в начале окна
	svc, _ := newService(dayBooking(1, domain.TypeBlocked, testDay, "09:00", "13:00"))

	got, err := svc.NextFittingSlot(context.Background(), testOwner, testDay, "09:00", "13:00", 60, 0, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)

	assert.Equal(t, testDay.AddDate(0, 0, 1), got.Date)
	assert.Equal(t, types.TimeString("09:00"), got.Slot.StartTime)
	assert.True(t, got.Slot.Available)
}

func TestNextFittingSlotHorizonExhausted(t *testing.T) {
	svc, _ := newService()

	// Вырожденное окно - ни на один день горизонта слотов нет
	_, err := svc.NextFittingSlot(context.Background(), testOwner, testDay, "17:00", "09:00", 60, 0, 5, domain.DefaultSchedulingConfig())
	require.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestNextBookableSlot(t *testing.T) {
	nextDay := testDay.AddDate(0, 0, 1)
	svc, _ := newService(
		// Сегодня окон доступности нет, завтра есть
		dayBooking(1, domain.TypeAvailability, nextDay, "10:00", "12:00"),
	)

	got, err := svc.NextBookableSlot(context.Background(), testOwner, testDay, 60, 0, 0, domain.DefaultSchedulingConfig())
	require.NoError(t, err)

	assert.Equal(t, nextDay, got.Date)
	assert.Equal(t, types.TimeString("10:00"), got.Slot.StartTime)
}

func TestNextBookableSlotNoneDeclared(t *testing.T) {
	svc, _ := newService()

	_, err := svc.NextBookableSlot(context.Background(), testOwner, testDay, 60, 0, 3, domain.DefaultSchedulingConfig())
	require.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestSlotsIdempotent(t *testing.T) {
	svc, _ := newService(dayBooking(1, domain.TypeBlocked, testDay, "10:00", "11:00"))

	cfg := domain.DefaultSchedulingConfig()
	first, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "09:00", "13:00", 60, 0, cfg)
	require.NoError(t, err)
	second, err := svc.SlotsInWindow(context.Background(), testOwner, testDay, "09:00", "13:00", 60, 0, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
