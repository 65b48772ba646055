package get_next_slot

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	findNextSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_next_slot"
)

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(ownerKind, ownerID string, query url.Values) (*findNextSlot.Request, error) {
	afterDate, err := time.Parse(domain.DateFormat, query.Get("afterDate"))
	if err != nil {
		return nil, err
	}

	req := &findNextSlot.Request{
		OwnerKind: ownerKind,
		OwnerID:   ownerID,
		AfterDate: afterDate,
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

	if horizonStr := query.Get("horizonDays"); horizonStr != "" {
		horizon, err := strconv.Atoi(horizonStr)
		if err != nil {
			return nil, err
		}
		req.HorizonDays = horizon
	}

	return req, nil
}
