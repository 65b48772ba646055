package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(ownerKind, ownerID string, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		OwnerKind: ownerKind,
		OwnerID:   ownerID,
		Date:      date,
		Mode:      query.Get("mode"),
		DayStart:  query.Get("dayStart"),
		DayEnd:    query.Get("dayEnd"),
	}

	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.SlotDurationMinutes = duration
	}

	if bufferStr := query.Get("bufferMinutes"); bufferStr != "" {
		buffer, err := strconv.Atoi(bufferStr)
		if err != nil {
			return nil, err
		}
		req.BufferMinutes = buffer
	}

	return req, nil
}
