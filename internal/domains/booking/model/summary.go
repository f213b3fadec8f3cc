package model

import "time"

// DriverSummary is one row of the drivers registry, aggregated from bookings
// by phone number.
type DriverSummary struct {
	DriverPhone string    `db:"driver_phone"`
	DriverName  string    `db:"driver_name"`
	CarrierName string    `db:"carrier_name"`
	TotalVisits int       `db:"total_visits"`
	LastVisit   time.Time `db:"last_visit"`
}
