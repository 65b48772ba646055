package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Режимы нарезки слотов
const (
	// ModeWindow фиксированное окно [dayStart, dayEnd)
	ModeWindow = "window"
	// ModeBookable только внутри заявленных availability-периодов владельца
	ModeBookable = "bookable"
)

// Request запрос на получение слотов на день
type Request struct {
	OwnerKind string
	OwnerID   string
	Date      time.Time

	// Mode режим нарезки: window (по умолчанию) или bookable
	Mode string

	// Границы дня, обязательны в режиме window
	DayStart string
	DayEnd   string

	SlotDurationMinutes int
	BufferMinutes       int
}

// SlotResponse один слот
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// Response ответ со слотами на день
type Response struct {
	Date  string         `json:"date"` // "2025-10-15"
	Mode  string         `json:"mode"`
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlots конвертирует слоты движка в DTO
func FromDomainSlots(date time.Time, mode string, slots []domain.Slot) *Response {
	resp := &Response{
		Date:  date.Format(domain.DateFormat),
		Mode:  mode,
		Slots: make([]SlotResponse, len(slots)),
	}

	for i, s := range slots {
		resp.Slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		}
	}

	return resp
}
