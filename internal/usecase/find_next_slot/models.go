package find_next_slot

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Режимы поиска слота
const (
	// ModeWindow фиксированное окно [dayStart, dayEnd) на каждом дне
	ModeWindow = "window"
	// ModeBookable только внутри заявленных availability-периодов владельца
	ModeBookable = "bookable"
)

// Request запрос на поиск ближайшего свободного слота
type Request struct {
	OwnerKind string
	OwnerID   string

	// AfterDate первый день поиска (включительно)
	AfterDate time.Time

	// Mode режим нарезки: window (по умолчанию) или bookable
	Mode string

	// Границы дня, обязательны в режиме window
	DayStart string
	DayEnd   string

	SlotDurationMinutes int
	BufferMinutes       int

	// HorizonDays глубина поиска; 0 = горизонт по умолчанию
	HorizonDays int
}

// Response найденный слот вместе с датой
type Response struct {
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// FromDatedSlot конвертирует найденный слот в DTO
func FromDatedSlot(s *domain.DatedSlot) *Response {
	if s == nil {
		return nil
	}

	return &Response{
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.Slot.StartTime.String(),
		EndTime:         s.Slot.EndTime.String(),
		DurationMinutes: s.Slot.DurationMinutes,
	}
}
