package domain

import "time"

// RecurrenceKind вид шаблона повторения
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// RecurrencePattern describes how a booking repeats over its date range.
// Only the fields of the configured kind are meaningful.
type RecurrencePattern struct {
	Kind RecurrenceKind

	// Weekly: набор дней недели (обязателен) и интервал в неделях.
	// IntervalWeeks <= 1 означает "каждую неделю".
	Weekdays      []time.Weekday
	IntervalWeeks int

	// Monthly: день месяца 1-31. 0 = день месяца даты начала бронирования.
	DayOfMonth int
}

// IsWellFormed проверяет инварианты шаблона:
// weekly требует непустой набор дней недели, monthly - день месяца 1-31
func (p RecurrencePattern) IsWellFormed() bool {
	switch p.Kind {
	case RecurrenceNone, RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return len(p.Weekdays) > 0 && p.IntervalWeeks >= 0
	case RecurrenceMonthly:
		return p.DayOfMonth >= 0 && p.DayOfMonth <= 31
	default:
		return false
	}
}

// OccursOn decides whether a recurring pattern anchored at startDate (and
// optionally bounded by endDate) occurs on the given calendar date.
//
// The function is pure: no clock, no config reads. Unknown pattern kinds
// never match - failing closed here beats silently widening the conflict set.
func OccursOn(pattern RecurrencePattern, startDate time.Time, endDate *time.Time, date time.Time) bool {
	day := DateOnly(date)
	start := DateOnly(startDate)

	if day.Before(start) {
		return false
	}
	if endDate != nil && day.After(DateOnly(*endDate)) {
		return false
	}

	switch pattern.Kind {
	case RecurrenceDaily:
		return true

	case RecurrenceWeekly:
		if !weekdayIn(pattern.Weekdays, day.Weekday()) {
			return false
		}
		if pattern.IntervalWeeks > 1 {
			// Неделя даты начала считается неделей 0
			weeks := wholeWeeksBetween(start, day)
			return weeks%pattern.IntervalWeeks == 0
		}
		return true

	case RecurrenceMonthly:
		dayOfMonth := pattern.DayOfMonth
		if dayOfMonth == 0 {
			dayOfMonth = start.Day()
		}
		return day.Day() == dayOfMonth

	default:
		return false
	}
}

func weekdayIn(set []time.Weekday, day time.Weekday) bool {
	for _, d := range set {
		if d == day {
			return true
		}
	}
	return false
}

// wholeWeeksBetween считает количество целых недель между неделями двух дат.
// Недели выравниваются по понедельнику.
func wholeWeeksBetween(from, to time.Time) int {
	fromWeek := startOfWeek(from)
	toWeek := startOfWeek(to)
	days := int(toWeek.Sub(fromWeek).Hours() / 24)
	return days / 7
}

// startOfWeek возвращает понедельник недели, в которую попадает дата
func startOfWeek(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
