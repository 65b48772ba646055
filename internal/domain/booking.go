package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BookingType governs the overlap policy of a booking
type BookingType string

const (
	// TypeAvailability declares open time; it never conflicts with anything
	TypeAvailability BookingType = "availability"
	// TypeAppointment occupies time and conflicts with appointments and blocked time
	TypeAppointment BookingType = "appointment"
	// TypeBlocked marks time as unusable; conflicts like an appointment
	TypeBlocked BookingType = "blocked"
	// TypeCustom participates in overlap checking only when explicitly requested
	TypeCustom BookingType = "custom"
)

// ValidBookingTypes все допустимые типы бронирований
var ValidBookingTypes = []BookingType{
	TypeAvailability,
	TypeAppointment,
	TypeBlocked,
	TypeCustom,
}

// IsValid returns true if the booking type is one of the known types
func (t BookingType) IsValid() bool {
	for _, valid := range ValidBookingTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// OwnerRef is an opaque reference to whatever entity owns a calendar.
// The engine never resolves it - any model can have schedules.
type OwnerRef struct {
	Kind string
	ID   string
}

// IsZero returns true if the reference is empty
func (o OwnerRef) IsZero() bool {
	return o.Kind == "" && o.ID == ""
}

// Booking represents a named reservation of time for an owner, possibly recurring
type Booking struct {
	ID          int64
	Owner       OwnerRef
	Name        string
	Description string

	StartDate time.Time
	EndDate   *time.Time // nil = open-ended

	IsRecurring bool
	Recurrence  RecurrencePattern

	Type     BookingType
	Metadata map[string]string
	IsActive bool

	Periods []Period

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Period is one concrete time-of-day interval belonging to a Booking.
// For non-recurring bookings Date anchors the period to a calendar day;
// for recurring bookings Date is only the pattern's reference date - the
// occurrence date is always re-derived from the queried date, never stored.
type Period struct {
	ID        int64
	BookingID int64
	Date      *time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Metadata  map[string]string
}

// EffectiveDate возвращает дату, к которой привязан период:
// собственную дату периода, либо дату начала бронирования
func (p Period) EffectiveDate(bookingStartDate time.Time) time.Time {
	if p.Date != nil {
		return DateOnly(*p.Date)
	}
	return DateOnly(bookingStartDate)
}

// CoversDate проверяет, действует ли период бронирования b в дату date.
// Для повторяющихся бронирований дата выводится через evaluator повторений,
// для разовых - сравнивается с датой самого периода.
func (p Period) CoversDate(b *Booking, date time.Time) bool {
	if b.IsRecurring {
		return OccursOn(b.Recurrence, b.StartDate, b.EndDate, date)
	}
	return p.EffectiveDate(b.StartDate).Equal(DateOnly(date))
}

// InDateRange проверяет, может ли диапазон дат бронирования пересекаться
// с запрошенным диапазоном. Открытый EndDate всегда подходит.
func (b *Booking) InDateRange(from, to time.Time) bool {
	if DateOnly(b.StartDate).After(DateOnly(to)) {
		return false
	}
	if b.EndDate == nil {
		return true
	}
	return !DateOnly(*b.EndDate).Before(DateOnly(from))
}

// OwnerBookingsFilter фильтр для выборки бронирований владельца
type OwnerBookingsFilter struct {
	Owner           OwnerRef
	StartDate       *time.Time   // Начало периода (опционально)
	EndDate         *time.Time   // Конец периода (опционально)
	Type            *BookingType // Фильтр по типу (опционально)
	IncludeInactive bool         // Включать ли деактивированные бронирования
}

// DateOnly обнуляет время, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
