package validation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// checkConstruction структурные проверки, выполняются до любых правил
func checkConstruction(c *domain.CandidateBooking) error {
	if c.Owner.IsZero() {
		return &domain.ConstructionError{Field: "owner", Message: "owner reference is required"}
	}
	if c.StartDate.IsZero() {
		return &domain.ConstructionError{Field: "startDate", Message: "start date is required"}
	}
	return nil
}

// checkDates проверки диапазона дат бронирования
func (s *Service) checkDates(c *domain.CandidateBooking, cfg domain.SchedulingConfig, report *domain.ValidationError) {
	start := domain.DateOnly(c.StartDate)

	if c.EndDate != nil {
		end := domain.DateOnly(*c.EndDate)
		if end.Before(start) {
			report.Add("endDate", "end date must not be before start date")
		} else if cfg.MaxDateRangeDays > 0 {
			days := int(end.Sub(start).Hours() / 24)
			if days > cfg.MaxDateRangeDays {
				report.Add("endDate", fmt.Sprintf("date range must not exceed %d days", cfg.MaxDateRangeDays))
			}
		}
	}

	if cfg.RequireFutureDates {
		today := domain.DateOnly(s.timeProvider.Now())
		if start.Before(today) {
			report.Add("startDate", "start date must not be in the past")
		}
	}
}

// checkRecurrence проверяет согласованность флага повторения и шаблона
func checkRecurrence(c *domain.CandidateBooking, report *domain.ValidationError) {
	if !c.Type.IsValid() {
		report.Add("bookingType", fmt.Sprintf("unknown booking type %q", c.Type))
	}

	if !c.IsRecurring {
		return
	}

	if c.Recurrence.Kind == domain.RecurrenceNone || c.Recurrence.Kind == "" {
		report.Add("recurrencePattern", "recurring booking requires a recurrence pattern")
		return
	}
	if !c.Recurrence.IsWellFormed() {
		report.Add("recurrencePattern", fmt.Sprintf("malformed %s recurrence pattern", c.Recurrence.Kind))
	}
}

// checkPeriods проверки каждого периода и их взаимного расположения
func checkPeriods(c *domain.CandidateBooking, cfg domain.SchedulingConfig, report *domain.ValidationError) {
	if len(c.Periods) == 0 {
		report.Add("periods", "at least one period is required")
		return
	}

	if cfg.MaxPeriodsPerBooking > 0 && len(c.Periods) > cfg.MaxPeriodsPerBooking {
		report.Add("periods", fmt.Sprintf("booking must not have more than %d periods", cfg.MaxPeriodsPerBooking))
	}

	for i, p := range c.Periods {
		field := periodField(i)

		if p.StartTime.IsZero() {
			report.Add(field, "start time is required")
		} else if err := p.StartTime.Validate(); err != nil {
			report.Add(field, fmt.Sprintf("invalid start time %q, expected HH:MM", p.StartTime))
		}

		if p.EndTime.IsZero() {
			report.Add(field, "end time is required")
		} else if err := p.EndTime.Validate(); err != nil {
			report.Add(field, fmt.Sprintf("invalid end time %q, expected HH:MM", p.EndTime))
		}

		if !periodTimesValid(p) {
			continue
		}

		if !p.EndTime.IsAfter(p.StartTime) {
			report.Add(field, "end time must be after start time")
			continue
		}

		minutes := periodMinutes(p)
		if cfg.MinPeriodMinutes > 0 && minutes < cfg.MinPeriodMinutes {
			report.Add(field, fmt.Sprintf("period must be at least %d minutes", cfg.MinPeriodMinutes))
		}
		if cfg.MaxPeriodMinutes > 0 && minutes > cfg.MaxPeriodMinutes {
			report.Add(field, fmt.Sprintf("period must not exceed %d minutes", cfg.MaxPeriodMinutes))
		}

		if p.Date != nil {
			d := domain.DateOnly(*p.Date)
			if d.Before(domain.DateOnly(c.StartDate)) {
				report.Add(field, "period date is before the booking start date")
			}
			if c.EndDate != nil && d.After(domain.DateOnly(*c.EndDate)) {
				report.Add(field, "period date is after the booking end date")
			}
		}
	}

	if !cfg.AllowOverlappingPeriods {
		checkIntraOverlap(c, report)
	}
}

// checkIntraOverlap пересечения периодов одного кандидата на одну
// эффективную дату
func checkIntraOverlap(c *domain.CandidateBooking, report *domain.ValidationError) {
	for i := 0; i < len(c.Periods); i++ {
		if !periodTimesValid(c.Periods[i]) {
			continue
		}
		for j := i + 1; j < len(c.Periods); j++ {
			if !periodTimesValid(c.Periods[j]) {
				continue
			}

			a, b := c.Periods[i], c.Periods[j]
			if !domain.SameDay(a.EffectiveDate(c.StartDate), b.EffectiveDate(c.StartDate)) {
				continue
			}
			if domain.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				report.Add(periodField(j), fmt.Sprintf("overlaps period %d of the same booking", i))
			}
		}
	}
}

// applyWorkingHours каждый период целиком внутри [Start, End]
func applyWorkingHours(c *domain.CandidateBooking, rule domain.WorkingHoursRule, report *domain.ValidationError) {
	if !rule.Enabled {
		return
	}

	for i, p := range c.Periods {
		if !periodTimesValid(p) {
			continue
		}
		if p.StartTime.IsBefore(rule.Start) || p.EndTime.IsAfter(rule.End) {
			report.Add(periodField(i), fmt.Sprintf("must be within working hours %s-%s", rule.Start, rule.End))
		}
	}
}

// applyMaxDuration длительность каждого периода не больше лимита правила
func applyMaxDuration(c *domain.CandidateBooking, rule domain.MaxDurationRule, report *domain.ValidationError) {
	if !rule.Enabled || rule.Minutes <= 0 {
		return
	}

	for i, p := range c.Periods {
		if !periodTimesValid(p) {
			continue
		}
		if periodMinutes(p) > rule.Minutes {
			report.Add(periodField(i), fmt.Sprintf("duration must not exceed %d minutes", rule.Minutes))
		}
	}
}

// applyNoWeekends дата начала и явно датированные периоды не попадают
// на отключенные дни недели
func applyNoWeekends(c *domain.CandidateBooking, rule domain.NoWeekendsRule, report *domain.ValidationError) {
	if !rule.Enabled {
		return
	}

	if weekdayDisabled(rule, c.StartDate.Weekday()) {
		report.Add("startDate", fmt.Sprintf("start date falls on a disabled %s", c.StartDate.Weekday()))
	}

	for i, p := range c.Periods {
		if p.Date == nil {
			continue
		}
		if weekdayDisabled(rule, p.Date.Weekday()) {
			report.Add(periodField(i), fmt.Sprintf("period date falls on a disabled %s", p.Date.Weekday()))
		}
	}
}

func weekdayDisabled(rule domain.NoWeekendsRule, day time.Weekday) bool {
	switch day {
	case time.Saturday:
		return rule.Saturday
	case time.Sunday:
		return rule.Sunday
	default:
		return false
	}
}

func periodField(i int) string {
	return fmt.Sprintf("periods[%d]", i)
}

func periodTimesValid(p domain.Period) bool {
	return p.StartTime.Validate() == nil && p.EndTime.Validate() == nil
}

// periodMinutes длительность периода в минутах; времена уже провалидированы
func periodMinutes(p domain.Period) int {
	start, _ := p.StartTime.Minutes()
	end, _ := p.EndTime.Minutes()
	return end - start
}
