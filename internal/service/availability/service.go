package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// slotAppliesTo типы, против которых классифицируется каждый слот.
// Appointment - самый строгий тип: конфликтует и с appointment, и с blocked.
var slotAppliesTo = []domain.BookingType{domain.TypeAppointment, domain.TypeBlocked}

// Service движок доступности. Две модели работы:
//
//   - fixed-window: нарезает день [dayStart, dayEnd) на последовательные окна
//     фиксированной длины с зазором между ними и помечает каждое окно
//     занятым/свободным против существующих бронирований;
//   - availability-window: то же самое, но только внутри объединения периодов
//     активных availability-бронирований владельца, действующих на дату.
//
// Оба режима - чистые операции чтения: одна bulk-выборка бронирований на день,
// вся слотовая математика в памяти.
type Service struct {
	bookingRepo     BookingRepository
	conflictChecker ConflictChecker
	logger          Logger
}

// NewService создает движок доступности
func NewService(bookingRepo BookingRepository, conflictChecker ConflictChecker, logger Logger) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		conflictChecker: conflictChecker,
		logger:          logger,
	}
}

// SlotsInWindow возвращает упорядоченные слоты длиной slotDuration минут внутри
// [dayStart, dayEnd), каждый отделен от следующего зазором bufferMinutes.
// Слот попадает в результат только если помещается в окно целиком.
//
// Вырожденные входы (slotDuration <= 0, dayEnd <= dayStart, кривой формат
// времени) дают пустой результат сразу, без цикла. Отрицательный буфер
// приравнивается к нулевому.
func (s *Service) SlotsInWindow(
	ctx context.Context,
	owner domain.OwnerRef,
	date time.Time,
	dayStart, dayEnd types.TimeString,
	slotDuration, bufferMinutes int,
	cfg domain.SchedulingConfig,
) ([]domain.Slot, error) {
	startMin, endMin, ok := windowBounds(dayStart, dayEnd, slotDuration)
	if !ok {
		return []domain.Slot{}, nil
	}

	existing, err := s.loadDayBookings(ctx, owner, date)
	if err != nil {
		return nil, err
	}

	iterations := 0
	slots := s.buildSlots(owner, date, existing, startMin, endMin, slotDuration, bufferMinutes, cfg, &iterations)
	return slots, nil
}

// BookableSlots нарезает слоты только внутри объединения периодов активных
// availability-бронирований владельца, действующих на date. Слоты по-прежнему
// проверяются против appointment/blocked. Если на дату не заявлено ни одного
// окна доступности, результат пуст.
func (s *Service) BookableSlots(
	ctx context.Context,
	owner domain.OwnerRef,
	date time.Time,
	slotDuration, bufferMinutes int,
	cfg domain.SchedulingConfig,
) ([]domain.Slot, error) {
	if slotDuration <= 0 {
		return []domain.Slot{}, nil
	}

	existing, err := s.loadDayBookings(ctx, owner, date)
	if err != nil {
		return nil, err
	}

	windows := availabilityWindows(existing, date)
	if len(windows) == 0 {
		return []domain.Slot{}, nil
	}

	slots := make([]domain.Slot, 0)
	iterations := 0
	for _, w := range windows {
		slots = append(slots, s.buildSlots(owner, date, existing, w.start, w.end, slotDuration, bufferMinutes, cfg, &iterations)...)
	}

	return slots, nil
}

// NextFittingSlot идет вперед по календарю от afterDate включительно, нарезая
// каждый день в режиме fixed-window, и возвращает первый свободный слот вместе
// с датой. Если горизонт исчерпан - ErrNoSlotAvailable.
func (s *Service) NextFittingSlot(
	ctx context.Context,
	owner domain.OwnerRef,
	afterDate time.Time,
	dayStart, dayEnd types.TimeString,
	slotDuration, bufferMinutes, horizonDays int,
	cfg domain.SchedulingConfig,
) (*domain.DatedSlot, error) {
	return s.scanForward(afterDate, horizonDays, func(day time.Time) ([]domain.Slot, error) {
		return s.SlotsInWindow(ctx, owner, day, dayStart, dayEnd, slotDuration, bufferMinutes, cfg)
	})
}

// NextBookableSlot то же, что NextFittingSlot, но каждый день нарезается
// в режиме availability-window
func (s *Service) NextBookableSlot(
	ctx context.Context,
	owner domain.OwnerRef,
	afterDate time.Time,
	slotDuration, bufferMinutes, horizonDays int,
	cfg domain.SchedulingConfig,
) (*domain.DatedSlot, error) {
	return s.scanForward(afterDate, horizonDays, func(day time.Time) ([]domain.Slot, error) {
		return s.BookableSlots(ctx, owner, day, slotDuration, bufferMinutes, cfg)
	})
}

// scanForward общий цикл поиска по дням для обоих режимов
func (s *Service) scanForward(
	afterDate time.Time,
	horizonDays int,
	slotsFor func(day time.Time) ([]domain.Slot, error),
) (*domain.DatedSlot, error) {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}

	day := domain.DateOnly(afterDate)
	for i := 0; i < horizonDays; i++ {
		slots, err := slotsFor(day)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			if slot.Available {
				return &domain.DatedSlot{Date: day, Slot: slot}, nil
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	return nil, ErrNoSlotAvailable
}

// buildSlots нарезает окно [startMin, endMin) на слоты и классифицирует каждый.
// Счетчик итераций общий на весь день и ограничен сверху независимо от входов.
func (s *Service) buildSlots(
	owner domain.OwnerRef,
	date time.Time,
	existing []*domain.Booking,
	startMin, endMin, slotDuration, bufferMinutes int,
	cfg domain.SchedulingConfig,
	iterations *int,
) []domain.Slot {
	if slotDuration <= 0 || endMin <= startMin {
		return []domain.Slot{}
	}
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}

	slots := make([]domain.Slot, 0)

	for cur := startMin; cur+slotDuration <= endMin; cur += slotDuration + bufferMinutes {
		*iterations++
		if *iterations > domain.MaxSlotIterations {
			s.logger.Warn("buildSlots: iteration ceiling reached for owner=%s/%s, date=%s",
				owner.Kind, owner.ID, date.Format(domain.DateFormat))
			break
		}

		slotStart, err := types.FromMinutes(cur)
		if err != nil {
			break
		}
		slotEnd, err := types.FromMinutes(cur + slotDuration)
		if err != nil {
			break
		}

		slots = append(slots, domain.Slot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: slotDuration,
			Available:       s.slotFree(owner, date, slotStart, slotEnd, existing, cfg),
		})
	}

	return slots
}

// slotFree проверяет слот против загруженных бронирований как кандидата
// типа appointment с нулевым буфером
func (s *Service) slotFree(
	owner domain.OwnerRef,
	date time.Time,
	start, end types.TimeString,
	existing []*domain.Booking,
	cfg domain.SchedulingConfig,
) bool {
	day := domain.DateOnly(date)
	probe := &domain.CandidateBooking{
		Owner:     owner,
		StartDate: day,
		Type:      domain.TypeAppointment,
		IsActive:  true,
		Periods: []domain.Period{
			{Date: &day, StartTime: start, EndTime: end},
		},
	}

	probeCfg := cfg
	probeCfg.BufferMinutes = 0

	return len(s.conflictChecker.FindConflictsAmong(probe, existing, probeCfg, slotAppliesTo)) == 0
}

// loadDayBookings одна bulk-выборка всех активных бронирований владельца,
// чей диапазон дат покрывает date
func (s *Service) loadDayBookings(ctx context.Context, owner domain.OwnerRef, date time.Time) ([]*domain.Booking, error) {
	day := domain.DateOnly(date)
	filter := domain.OwnerBookingsFilter{
		Owner:     owner,
		StartDate: &day,
		EndDate:   &day,
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("loadDayBookings: failed to load bookings for owner=%s/%s, date=%s: %v",
			owner.Kind, owner.ID, day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// minuteWindow полуинтервал [start, end) в минутах от начала суток
type minuteWindow struct {
	start int
	end   int
}

// availabilityWindows объединение периодов активных availability-бронирований,
// действующих на date. Пересекающиеся и касающиеся окна сливаются.
func availabilityWindows(bookings []*domain.Booking, date time.Time) []minuteWindow {
	windows := make([]minuteWindow, 0)

	for _, b := range bookings {
		if !b.IsActive || b.Type != domain.TypeAvailability {
			continue
		}
		for _, p := range b.Periods {
			if !p.CoversDate(b, date) {
				continue
			}

			start, err := p.StartTime.Minutes()
			if err != nil {
				continue
			}
			end, err := p.EndTime.Minutes()
			if err != nil {
				continue
			}
			if end <= start {
				continue
			}

			windows = append(windows, minuteWindow{start: start, end: end})
		}
	}

	return mergeWindows(windows)
}

// mergeWindows сливает отсортированный по началу список окон
func mergeWindows(windows []minuteWindow) []minuteWindow {
	if len(windows) <= 1 {
		return windows
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })

	merged := windows[:1]
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.start <= last.end {
			if w.end > last.end {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}

// windowBounds переводит границы окна в минуты и отсекает вырожденные входы
func windowBounds(dayStart, dayEnd types.TimeString, slotDuration int) (int, int, bool) {
	if slotDuration <= 0 {
		return 0, 0, false
	}

	startMin, err := dayStart.Minutes()
	if err != nil {
		return 0, 0, false
	}
	endMin, err := dayEnd.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if endMin <= startMin {
		return 0, 0, false
	}

	return startMin, endMin, true
}
