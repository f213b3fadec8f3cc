package scheduling

import (
	"math"
	"time"
)

// DragResult is the concrete change a drag gesture maps to: the dock row the
// booking was dropped on and the shifted start/end with duration preserved.
type DragResult struct {
	DockID string
	Start  time.Time
	End    time.Time
	Status Status
	// HoursShift is the applied shift after snapping, in hours.
	HoursShift float64
}

// ComputeDragResult translates a pointer drag over the timeline into a new
// time and dock assignment for the booking.
//
// pixelDelta is the horizontal displacement of the drop relative to the
// booking's rendered position, timelineWidthPx the rendered width of the
// timeline and totalVisibleHours the number of hours it spans. The shift
// snaps to the nearest half hour. ok is false when the snapped shift is zero
// and the drop dock equals the original dock (or the geometry is degenerate):
// a no-op that must not produce a backend call.
//
// The dock is reassigned to the drop target without re-checking capability
// compatibility; callers treat a dock change as an admin override and log it.
// A "Late" booking whose shifted start lands on a different calendar day
// becomes "Rescheduled", the only automatic status transition in the system.
func ComputeDragResult(b Booking, dropDockID string, pixelDelta, timelineWidthPx float64, totalVisibleHours int) (DragResult, bool) {
	if timelineWidthPx <= 0 || totalVisibleHours <= 0 {
		return DragResult{}, false
	}

	pixelsPerHour := timelineWidthPx / float64(totalVisibleHours)
	hoursShift := pixelDelta / pixelsPerHour

	// Snap to the nearest 30 minutes.
	roundedShift := math.Round(hoursShift*2) / 2

	if roundedShift == 0 && dropDockID == b.DockID {
		return DragResult{}, false
	}

	shift := time.Duration(roundedShift * float64(time.Hour))
	newStart := b.Start.Add(shift)
	newEnd := b.End.Add(shift)

	status := b.Status
	if b.Status == StatusLate && !sameDay(b.Start, newStart) {
		status = StatusRescheduled
	}

	return DragResult{
		DockID:     dropDockID,
		Start:      newStart,
		End:        newEnd,
		Status:     status,
		HoursShift: roundedShift,
	}, true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
