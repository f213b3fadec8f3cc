// Package scheduling holds the slot-availability resolver and the
// drag-reschedule mapper used by the booking wizard and the admin timeline.
// Everything in here is a pure function of its snapshot inputs; callers are
// responsible for fetching docks and bookings and for persisting results.
package scheduling

import "time"

// LoadType tags the kind of cargo a booking carries. A dock must list the
// load type in its capability set to be eligible for the booking.
type LoadType string

const (
	LoadTypeGeneral     LoadType = "General"
	LoadTypeColdStorage LoadType = "Cold Storage"
	LoadTypeHazardous   LoadType = "Hazardous"
)

// LoadTypes is the fixed set of recognised load types, in display order.
var LoadTypes = []LoadType{LoadTypeGeneral, LoadTypeColdStorage, LoadTypeHazardous}

// Valid reports whether t is a member of the fixed load type enumeration.
func (t LoadType) Valid() bool {
	for _, known := range LoadTypes {
		if t == known {
			return true
		}
	}

	return false
}

// Status is a booking lifecycle state.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusConfirmed   Status = "Confirmed"
	StatusArrived     Status = "Arrived"
	StatusCompleted   Status = "Completed"
	StatusCancelled   Status = "Cancelled"
	StatusLate        Status = "Late"
	StatusRescheduled Status = "Rescheduled"
)

// Statuses is the fixed set of booking statuses.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusArrived,
	StatusCompleted,
	StatusCancelled,
	StatusLate,
	StatusRescheduled,
}

// Valid reports whether s is a member of the fixed status enumeration.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}

	return false
}

// Dock is the resolver's view of a loading dock.
type Dock struct {
	ID           string
	Name         string
	Capabilities []LoadType
	Active       bool
}

// Supports reports whether the dock's capability set contains the load type.
func (d Dock) Supports(loadType LoadType) bool {
	for _, capability := range d.Capabilities {
		if capability == loadType {
			return true
		}
	}

	return false
}

// Booking is the resolver's view of an existing booking. Start and End are
// wall-clock times; no timezone offset is applied when comparing slots.
type Booking struct {
	ID     string
	DockID string
	Start  time.Time
	End    time.Time
	Status Status
}

const (
	// DayFormat and SlotFormat are the wire formats for dates and slot times.
	DayFormat  = "2006-01-02"
	SlotFormat = "15:04"
)

const (
	// DefaultStartHour and DefaultEndHour bound the visible timeline window.
	DefaultStartHour = 6
	DefaultEndHour   = 22
)
