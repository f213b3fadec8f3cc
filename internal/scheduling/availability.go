package scheduling

import "time"

// IsTimeSlotAvailable reports whether at least one dock capable of the load
// type is free at the candidate slot on the given date.
//
// slot is an "HH:MM" 24-hour string and date a "YYYY-MM-DD" string; docks and
// bookings are the full in-memory snapshot for that date. When date is the
// current day, slots already in the past relative to now are rejected at
// minute granularity. A dock counts as occupied only when an existing
// booking's start formats to exactly the candidate slot; partial overlap
// inside the slot is not detected here, the backend overlap check remains
// authoritative.
func IsTimeSlotAvailable(slot string, loadType LoadType, date string, docks []Dock, bookings []Booking, now time.Time) bool {
	capable := CapableDocks(docks, loadType)
	if len(capable) == 0 {
		return false
	}

	if date == now.Format(DayFormat) {
		slotTime, err := time.Parse(SlotFormat, slot)
		if err != nil {
			return false
		}

		slotAt := time.Date(now.Year(), now.Month(), now.Day(), slotTime.Hour(), slotTime.Minute(), 0, 0, now.Location())
		if now.After(slotAt) {
			return false
		}
	}

	for _, dock := range capable {
		if !Occupied(dock.ID, slot, bookings) {
			return true
		}
	}

	return false
}

// FirstAvailableDock re-runs the capability and occupancy checks at submission
// time and returns the first capability-matching, unoccupied dock in listing
// order. There is no load balancing; ok is false when every eligible dock is
// taken and the caller must not create the booking.
func FirstAvailableDock(slot string, loadType LoadType, docks []Dock, bookings []Booking) (Dock, bool) {
	for _, dock := range CapableDocks(docks, loadType) {
		if !Occupied(dock.ID, slot, bookings) {
			return dock, true
		}
	}

	return Dock{}, false
}

// CapableDocks filters the snapshot to docks whose capability set contains the
// load type, preserving listing order.
func CapableDocks(docks []Dock, loadType LoadType) []Dock {
	capable := []Dock{}
	for _, dock := range docks {
		if dock.Supports(loadType) {
			capable = append(capable, dock)
		}
	}

	return capable
}

// Occupied reports whether any booking on the dock starts exactly at the slot.
func Occupied(dockID, slot string, bookings []Booking) bool {
	for _, booking := range bookings {
		if booking.DockID != dockID {
			continue
		}

		if booking.Start.Format(SlotFormat) == slot {
			return true
		}
	}

	return false
}

// Slots enumerates the offerable "HH:MM" slot starts of a visible window, one
// per slotMinutes between startHour (inclusive) and endHour (exclusive).
func Slots(startHour, endHour, slotMinutes int) []string {
	if slotMinutes <= 0 {
		slotMinutes = 60
	}

	slots := []string{}

	day := time.Date(0, time.January, 1, startHour, 0, 0, 0, time.UTC)
	end := time.Date(0, time.January, 1, endHour, 0, 0, 0, time.UTC)

	for at := day; at.Before(end); at = at.Add(time.Duration(slotMinutes) * time.Minute) {
		slots = append(slots, at.Format(SlotFormat))
	}

	return slots
}
