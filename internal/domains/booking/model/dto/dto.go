package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"simpledock/internal/domains/booking/model"
	"simpledock/internal/scheduling"
	"simpledock/shared"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	gModel "simpledock/shared/model"
	"simpledock/shared/timezone"
)

const (
	poPrefix         = "PO-"
	bookingRefPrefix = "BK-"
)

// NewBookingRef mints a short human-readable booking reference.
func NewBookingRef() string {
	return bookingRefPrefix + strings.ToUpper(uuid.NewString()[:8])
}

// ValidPONumber reports whether the purchase order number carries the
// mandatory "PO-" prefix.
func ValidPONumber(po string) bool {
	return strings.HasPrefix(po, poPrefix)
}

type CreateBookingRequest struct {
	DockID      string `json:"dock_id"      validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	EndTime     string `json:"end_time"     validate:"required"`
	CarrierName string `json:"carrier_name" validate:"required,max=100"`
	PONumber    string `json:"po_number"    validate:"required,max=50"`
	DriverName  string `json:"driver_name"  validate:"omitempty,max=100"`
	DriverPhone string `json:"driver_phone" validate:"omitempty,max=20"`
	OdooOrderID *int   `json:"odoo_order_id" validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	start, err := time.Parse(constant.WallClockFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err
	}

	end, err := time.Parse(constant.WallClockFormat, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:          uuid.NewString(),
		DockID:      c.DockID,
		BookingDate: start.Truncate(24 * time.Hour),
		StartTime:   start,
		EndTime:     end,
		CarrierName: c.CarrierName,
		DriverName:  c.DriverName,
		DriverPhone: c.DriverPhone,
		PONumber:    c.PONumber,
		OdooOrderID: c.OdooOrderID,
		BookingRef:  NewBookingRef(),
		Status:      string(scheduling.StatusConfirmed),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// WizardBookingRequest books by slot instead of by dock: the service re-runs
// the availability resolver at submission and first-fit assigns a dock.
type WizardBookingRequest struct {
	LoadType    string `json:"load_type"    validate:"required,oneof=General 'Cold Storage' Hazardous"`
	Date        string `json:"date"         validate:"required"`
	Slot        string `json:"slot"         validate:"required"`
	CarrierName string `json:"carrier_name" validate:"required,max=100"`
	PONumber    string `json:"po_number"    validate:"required,max=50"`
	DriverName  string `json:"driver_name"  validate:"omitempty,max=100"`
	DriverPhone string `json:"driver_phone" validate:"omitempty,max=20"`
	OdooOrderID *int   `json:"odoo_order_id" validate:"omitempty"`
}

// SlotStart parses the wizard's date + "HH:MM" slot pair into a wall-clock
// start time.
func (w *WizardBookingRequest) SlotStart() (time.Time, error) {
	return time.Parse(constant.DayFormat+" "+constant.SlotTimeFormat, w.Date+" "+w.Slot)
}

// ToModel builds the booking once the resolver has assigned a dock.
func (w *WizardBookingRequest) ToModel(dockID string, start time.Time, slotWidth time.Duration, user string) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		DockID:      dockID,
		BookingDate: start.Truncate(24 * time.Hour),
		StartTime:   start,
		EndTime:     start.Add(slotWidth),
		CarrierName: w.CarrierName,
		DriverName:  w.DriverName,
		DriverPhone: w.DriverPhone,
		PONumber:    w.PONumber,
		OdooOrderID: w.OdooOrderID,
		BookingRef:  NewBookingRef(),
		Status:      string(scheduling.StatusConfirmed),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	DockID    string `db:"dock_id" json:"dock_id"    validate:"omitempty"`
	Status    string `db:"status"  json:"status"     validate:"omitempty,oneof=Pending Confirmed Arrived Completed Cancelled Late Rescheduled"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time"   validate:"omitempty"`
}

// DragRescheduleRequest carries the raw drop geometry from the admin timeline.
type DragRescheduleRequest struct {
	DropDockID        string  `json:"drop_dock_id"        validate:"required"`
	PixelDelta        float64 `json:"pixel_delta"`
	TimelineWidthPx   float64 `json:"timeline_width_px"   validate:"required,gt=0"`
	TotalVisibleHours int     `json:"total_visible_hours" validate:"omitempty,gt=0"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	DockID      string `json:"dock_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CarrierName string `json:"carrier_name"`
	DriverName  string `json:"driver_name,omitempty"`
	DriverPhone string `json:"driver_phone,omitempty"`
	PONumber    string `json:"po_number"`
	OdooOrderID *int   `json:"odoo_order_id,omitempty"`
	BookingRef  string `json:"booking_ref"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.DockID = model.DockID
	r.BookingDate = model.BookingDate.Format(constant.DayFormat)
	r.StartTime = model.StartTime.Format(constant.WallClockFormat)
	r.EndTime = model.EndTime.Format(constant.WallClockFormat)
	r.CarrierName = model.CarrierName
	r.DriverName = model.DriverName
	r.DriverPhone = model.DriverPhone
	r.PONumber = model.PONumber
	r.OdooOrderID = model.OdooOrderID
	r.BookingRef = model.BookingRef
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// SlotAvailability is one entry of the wizard's availability grid.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type GetAvailabilityResponse struct {
	Date     string             `json:"date"`
	LoadType string             `json:"load_type"`
	Slots    []SlotAvailability `json:"slots"`
}

// DragRescheduleResponse reports the mapped drop, including whether the drag
// collapsed to a no-op and how the optimistic update settled.
type DragRescheduleResponse struct {
	Booking    BookingResponse `json:"booking"`
	NoOp       bool            `json:"no_op"`
	HoursShift float64         `json:"hours_shift"`
	SyncState  string          `json:"sync_state"`
}

type ValidatePOResponse struct {
	Valid   bool   `json:"valid"`
	ID      int    `json:"id,omitempty"`
	Partner string `json:"partner,omitempty"`
}
