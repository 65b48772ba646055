package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Overlaps reports whether two half-open time-of-day intervals
// [startA, endA) and [startB, endB) intersect.
//
// Touching intervals do NOT overlap: a booking that ends at 10:00 and one
// that starts at 10:00 coexist. This tie-break is load-bearing for the
// whole engine - slot generation and conflict detection both rely on it.
func Overlaps(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && endA.IsAfter(startB)
}

// ExpandBuffer widens an interval by bufferMinutes on both sides, clamping
// to the bounds of the day. A negative buffer is clamped to zero before
// expansion. The buffer is applied to the existing booking's interval, not
// the candidate's, before calling Overlaps.
func ExpandBuffer(start, end types.TimeString, bufferMinutes int) (types.TimeString, types.TimeString) {
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	if bufferMinutes == 0 {
		return start, end
	}

	startMin, err := start.Minutes()
	if err != nil {
		return start, end
	}
	endMin, err := end.Minutes()
	if err != nil {
		return start, end
	}

	startMin -= bufferMinutes
	if startMin < 0 {
		startMin = 0
	}
	endMin += bufferMinutes
	if endMin > types.MinutesPerDay {
		endMin = types.MinutesPerDay
	}

	expandedStart, err := types.FromMinutes(startMin)
	if err != nil {
		return start, end
	}
	expandedEnd, err := types.FromMinutes(endMin)
	if err != nil {
		return start, end
	}

	return expandedStart, expandedEnd
}
