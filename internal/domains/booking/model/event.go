package model

// ConfirmedEvent is published to Kafka when a booking is created. The
// notifier consumer turns it into the carrier-facing confirmation message.
type ConfirmedEvent struct {
	BookingID   string `json:"booking_id"`
	BookingRef  string `json:"booking_ref"`
	DockID      string `json:"dock_id"`
	CarrierName string `json:"carrier_name"`
	DriverPhone string `json:"driver_phone,omitempty"`
	PONumber    string `json:"po_number"`
	StartTime   string `json:"start_time"`
}

// FromModel builds the event payload from a freshly created booking.
func (e *ConfirmedEvent) FromModel(booking Booking, timeFormat string) {
	e.BookingID = booking.ID
	e.BookingRef = booking.BookingRef
	e.DockID = booking.DockID
	e.CarrierName = booking.CarrierName
	e.DriverPhone = booking.DriverPhone
	e.PONumber = booking.PONumber
	e.StartTime = booking.StartTime.Format(timeFormat)
}
