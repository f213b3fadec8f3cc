package model

import (
	"time"

	"simpledock/internal/scheduling"
	"simpledock/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldDockID      = "dock_id"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldCarrierName = "carrier_name"
	FieldDriverName  = "driver_name"
	FieldDriverPhone = "driver_phone"
	FieldPONumber    = "po_number"
	FieldOdooOrderID = "odoo_order_id"
	FieldBookingRef  = "booking_ref"
	FieldStatus      = "status"
)

// Booking times are wall-clock; the database column has no timezone and no
// offset math is applied when comparing slots.
type Booking struct {
	ID          string    `db:"id"`
	DockID      string    `db:"dock_id"`
	BookingDate time.Time `db:"booking_date"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	CarrierName string    `db:"carrier_name"`
	DriverName  string    `db:"driver_name"`
	DriverPhone string    `db:"driver_phone"`
	PONumber    string    `db:"po_number"`
	OdooOrderID *int      `db:"odoo_order_id"`
	BookingRef  string    `db:"booking_ref"`
	Status      string    `db:"status"`
	model.Metadata
}

// ToSchedulingBooking converts the persisted row into the resolver's shape.
func (b Booking) ToSchedulingBooking() scheduling.Booking {
	return scheduling.Booking{
		ID:     b.ID,
		DockID: b.DockID,
		Start:  b.StartTime,
		End:    b.EndTime,
		Status: scheduling.Status(b.Status),
	}
}

func ToSchedulingBookings(models []Booking) []scheduling.Booking {
	bookings := make([]scheduling.Booking, len(models))
	for i, m := range models {
		bookings[i] = m.ToSchedulingBooking()
	}

	return bookings
}
