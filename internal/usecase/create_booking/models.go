package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	OwnerKind   string
	OwnerID     string
	Name        string
	Description string

	StartDate time.Time
	EndDate   *time.Time

	IsRecurring bool
	Recurrence  *RecurrenceSpec

	Type     string
	Metadata map[string]string

	Periods []PeriodSpec

	Rules *RulesSpec
}

// RecurrenceSpec шаблон повторения в терминах запроса
type RecurrenceSpec struct {
	Kind          string
	Weekdays      []string
	IntervalWeeks int
	DayOfMonth    int
}

// PeriodSpec один временной интервал запроса
type PeriodSpec struct {
	Date      *time.Time
	StartTime string
	EndTime   string
	Metadata  map[string]string
}

// RulesSpec переопределения правил валидации со стороны кандидата.
// Не упомянутое правило наследует умолчание сервиса, упомянутое с
// enabled=false отключается.
type RulesSpec struct {
	WorkingHours *WorkingHoursSpec
	MaxDuration  *MaxDurationSpec
	NoWeekends   *NoWeekendsSpec
	NoOverlap    *NoOverlapSpec
}

// WorkingHoursSpec правило рабочих часов
type WorkingHoursSpec struct {
	Enabled bool
	Start   string
	End     string
}

// MaxDurationSpec правило максимальной длительности периода
type MaxDurationSpec struct {
	Enabled bool
	Minutes int
}

// NoWeekendsSpec правило запрета выходных дней
type NoWeekendsSpec struct {
	Enabled  bool
	Saturday bool
	Sunday   bool
}

// NoOverlapSpec правило запрета пересечений с существующими бронированиями
type NoOverlapSpec struct {
	Enabled   bool
	AppliesTo []string
}

// Response ответ с созданным бронированием
type Response = bookingModels.BookingResponse

// ToDomainCandidate собирает domain кандидата из запроса
func (r *Request) ToDomainCandidate() (*domain.CandidateBooking, error) {
	bookingType, err := bookingModels.ToDomainBookingType(r.Type)
	if err != nil {
		return nil, err
	}

	candidate := &domain.CandidateBooking{
		Owner:       domain.OwnerRef{Kind: r.OwnerKind, ID: r.OwnerID},
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsRecurring: r.IsRecurring,
		Type:        bookingType,
		Metadata:    r.Metadata,
		IsActive:    true,
	}

	if r.Recurrence != nil {
		recurrence, err := r.Recurrence.toDomain()
		if err != nil {
			return nil, err
		}
		candidate.Recurrence = recurrence
	}

	candidate.Periods = make([]domain.Period, len(r.Periods))
	for i, p := range r.Periods {
		candidate.Periods[i] = domain.Period{
			Date:      p.Date,
			StartTime: types.TimeString(p.StartTime),
			EndTime:   types.TimeString(p.EndTime),
			Metadata:  p.Metadata,
		}
	}

	if r.Rules != nil {
		overrides, err := r.Rules.toDomain()
		if err != nil {
			return nil, err
		}
		candidate.Rules = overrides
	}

	return candidate, nil
}

func (r *RecurrenceSpec) toDomain() (domain.RecurrencePattern, error) {
	kind, err := bookingModels.ToDomainRecurrenceKind(r.Kind)
	if err != nil {
		return domain.RecurrencePattern{}, err
	}

	pattern := domain.RecurrencePattern{
		Kind:          kind,
		IntervalWeeks: r.IntervalWeeks,
		DayOfMonth:    r.DayOfMonth,
	}

	for _, name := range r.Weekdays {
		day, err := bookingModels.ToDomainWeekday(name)
		if err != nil {
			return domain.RecurrencePattern{}, err
		}
		pattern.Weekdays = append(pattern.Weekdays, day)
	}

	return pattern, nil
}

func (r *RulesSpec) toDomain() (domain.RuleOverrides, error) {
	overrides := domain.RuleOverrides{}

	if r.WorkingHours != nil {
		overrides.WorkingHours = &domain.WorkingHoursRule{
			Enabled: r.WorkingHours.Enabled,
			Start:   types.TimeString(r.WorkingHours.Start),
			End:     types.TimeString(r.WorkingHours.End),
		}
	}
	if r.MaxDuration != nil {
		overrides.MaxDuration = &domain.MaxDurationRule{
			Enabled: r.MaxDuration.Enabled,
			Minutes: r.MaxDuration.Minutes,
		}
	}
	if r.NoWeekends != nil {
		overrides.NoWeekends = &domain.NoWeekendsRule{
			Enabled:  r.NoWeekends.Enabled,
			Saturday: r.NoWeekends.Saturday,
			Sunday:   r.NoWeekends.Sunday,
		}
	}
	if r.NoOverlap != nil {
		rule := &domain.NoOverlapRule{Enabled: r.NoOverlap.Enabled}
		for _, name := range r.NoOverlap.AppliesTo {
			bookingType, err := bookingModels.ToDomainBookingType(name)
			if err != nil {
				return overrides, fmt.Errorf("noOverlap appliesTo: %w", err)
			}
			rule.AppliesTo = append(rule.AppliesTo, bookingType)
		}
		overrides.NoOverlap = rule
	}

	return overrides, nil
}
