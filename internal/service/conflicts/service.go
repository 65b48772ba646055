package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// maxScanDays потолок перебора дат при поиске общей даты двух повторяющихся
// шаблонов. 366 покрывает полный цикл месячных шаблонов и високосный год.
const maxScanDays = 366

// Service обнаруживает конфликты кандидата с существующими бронированиями владельца.
// Сервис не хранит состояния между вызовами - вся конфигурация приходит явно.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса детекции конфликтов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// FindConflicts возвращает ВСЕ бронирования владельца, конфликтующие с кандидатом,
// а не только первое. Fail-fast поведение - забота вызывающей стороны.
//
// Алгоритм:
//  1. Одной bulk-выборкой загружаются активные бронирования владельца, чей диапазон
//     дат может пересекаться с диапазоном кандидата (открытые диапазоны подходят всегда).
//  2. Для каждой пары (период кандидата, базовый период существующего бронирования)
//     проверяется совпадение дат: повторения никогда не материализуются - вместо
//     перечисления дат существующего бронирования evaluator вызывается на датах кандидата.
//  3. При совпадении дат интервал существующего периода расширяется буфером и
//     проверяется пересечение полуинтервалов.
//  4. Пересечение засчитывается конфликтом только если типы несовместимы по
//     Type Policy с учетом ограничения appliesTo.
//
// Бронирование с несколькими пересекающимися периодами попадает в результат один раз.
//
// Глобальный выключатель cfg.ConflictDetectionEnabled имеет приоритет над любыми
// правилами: при false список всегда пуст.
func (s *Service) FindConflicts(
	ctx context.Context,
	candidate *domain.CandidateBooking,
	cfg domain.SchedulingConfig,
	appliesTo []domain.BookingType,
) ([]*domain.Booking, error) {
	if !cfg.ConflictDetectionEnabled {
		return []*domain.Booking{}, nil
	}

	// Ограничение appliesTo проверяется до Type Policy
	if !domain.TypeInSet(candidate.Type, appliesTo) {
		return []*domain.Booking{}, nil
	}

	filter := domain.OwnerBookingsFilter{
		Owner:     candidate.Owner,
		StartDate: candidateRangeStart(candidate),
		EndDate:   candidate.EndDate,
	}

	existing, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("FindConflicts: failed to load bookings for owner=%s/%s: %v",
			candidate.Owner.Kind, candidate.Owner.ID, err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	conflicting := s.FindConflictsAmong(candidate, existing, cfg, appliesTo)

	if len(conflicting) > 0 {
		s.logger.Warn("FindConflicts: candidate for owner=%s/%s conflicts with %d bookings",
			candidate.Owner.Kind, candidate.Owner.ID, len(conflicting))
	}

	return conflicting, nil
}

// FindConflictsAmong проверяет кандидата против уже загруженного набора
// бронирований, без обращения к хранилищу. Используется движком доступности:
// он загружает бронирования владельца одной bulk-выборкой на день и
// классифицирует каждый слот в памяти.
func (s *Service) FindConflictsAmong(
	candidate *domain.CandidateBooking,
	existing []*domain.Booking,
	cfg domain.SchedulingConfig,
	appliesTo []domain.BookingType,
) []*domain.Booking {
	if !cfg.ConflictDetectionEnabled {
		return []*domain.Booking{}
	}
	if !domain.TypeInSet(candidate.Type, appliesTo) {
		return []*domain.Booking{}
	}

	conflicting := make([]*domain.Booking, 0)

	for _, b := range existing {
		if !b.IsActive {
			continue
		}
		if !domain.TypeInSet(b.Type, appliesTo) {
			continue
		}
		if !typesMayConflict(candidate.Type, b.Type) {
			continue
		}

		if s.bookingConflicts(candidate, b, cfg.BufferMinutes) {
			conflicting = append(conflicting, b)
		}
	}

	return conflicting
}

// bookingConflicts проверяет пересечение кандидата с одним бронированием.
// Возвращает true при первом найденном пересечении периодов.
func (s *Service) bookingConflicts(candidate *domain.CandidateBooking, b *domain.Booking, bufferMinutes int) bool {
	for _, p := range candidate.Periods {
		for _, q := range b.Periods {
			if s.periodsCollide(candidate, p, b, q, bufferMinutes) {
				return true
			}
		}
	}
	return false
}

// periodsCollide проверяет, пересекаются ли период кандидата и базовый период
// существующего бронирования хотя бы на одной календарной дате
func (s *Service) periodsCollide(
	candidate *domain.CandidateBooking,
	p domain.Period,
	b *domain.Booking,
	q domain.Period,
	bufferMinutes int,
) bool {
	// Буфер применяется к интервалу СУЩЕСТВУЮЩЕГО бронирования, не кандидата
	qStart, qEnd := domain.ExpandBuffer(q.StartTime, q.EndTime, bufferMinutes)

	if !domain.Overlaps(p.StartTime, p.EndTime, qStart, qEnd) {
		return false
	}

	// Времена пересекаются - осталось найти дату, на которой оба периода в силе
	if !candidate.IsRecurring {
		return q.CoversDate(b, p.EffectiveDate(candidate.StartDate))
	}

	return s.recurringDatesCoincide(candidate, b, q)
}

// recurringDatesCoincide ищет дату, на которой повторяющийся кандидат и
// существующий период действуют одновременно. Перебор идет по датам кандидата
// (его собственный шаблон) в пересечении активных диапазонов и ограничен сверху.
func (s *Service) recurringDatesCoincide(candidate *domain.CandidateBooking, b *domain.Booking, q domain.Period) bool {
	from := domain.DateOnly(candidate.StartDate)
	if domain.DateOnly(b.StartDate).After(from) {
		from = domain.DateOnly(b.StartDate)
	}

	to := from.AddDate(0, 0, maxScanDays)
	if candidate.EndDate != nil && domain.DateOnly(*candidate.EndDate).Before(to) {
		to = domain.DateOnly(*candidate.EndDate)
	}
	if b.EndDate != nil && domain.DateOnly(*b.EndDate).Before(to) {
		to = domain.DateOnly(*b.EndDate)
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !domain.OccursOn(candidate.Recurrence, candidate.StartDate, candidate.EndDate, d) {
			continue
		}
		if q.CoversDate(b, d) {
			return true
		}
	}

	return false
}

// candidateRangeStart возвращает нижнюю границу диапазона дат кандидата
// для bulk-выборки: самая ранняя из дат периодов и даты начала
func candidateRangeStart(candidate *domain.CandidateBooking) *time.Time {
	earliest := domain.DateOnly(candidate.StartDate)
	for _, p := range candidate.Periods {
		if d := p.EffectiveDate(candidate.StartDate); d.Before(earliest) {
			earliest = d
		}
	}
	return &earliest
}

// typesMayConflict применяет Type Policy с поправкой на custom:
// custom участвует в проверке пересечений только через явный appliesTo
// (вхождение обоих типов уже проверено выше), availability не конфликтует никогда.
func typesMayConflict(a, b domain.BookingType) bool {
	if a == domain.TypeAvailability || b == domain.TypeAvailability {
		return false
	}
	if a == domain.TypeCustom || b == domain.TypeCustom {
		return true
	}
	return domain.TypesConflict(a, b)
}
