package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Slot represents one fixed-duration candidate window produced by the
// availability engine, labeled available or occupied
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
}

// DatedSlot слот вместе с датой, на которую он найден.
// Возвращается поиском следующего свободного окна.
type DatedSlot struct {
	Date time.Time
	Slot Slot
}
