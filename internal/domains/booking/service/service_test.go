package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"simpledock/config"
	kafkaMocks "simpledock/infras/kafka/mocks"
	"simpledock/infras/odoo"
	odooMocks "simpledock/infras/odoo/mocks"
	"simpledock/infras/otel/mocks"
	bookingMocks "simpledock/internal/domains/booking/mocks"
	"simpledock/internal/domains/booking/model"
	"simpledock/internal/domains/booking/model/dto"
	"simpledock/internal/domains/booking/service"
	dockMocks "simpledock/internal/domains/dock/mocks"
	dockModel "simpledock/internal/domains/dock/model"
	"simpledock/internal/scheduling"
	cacheMocks "simpledock/shared/cache/mocks"
	"simpledock/shared/constant"
	"simpledock/shared/failure"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Schedule.StartHour = 6
	cfg.App.Schedule.EndHour = 22
	cfg.App.Schedule.SlotMinutes = 60

	return cfg
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				DockID:      "dock-1",
				StartTime:   "2026-09-01T09:00:00",
				EndTime:     "2026-09-01T10:00:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-12345",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "po number without prefix",
			req: dto.CreateBookingRequest{
				DockID:      "dock-1",
				StartTime:   "2026-09-01T09:00:00",
				EndTime:     "2026-09-01T10:00:00",
				CarrierName: "Acme Logistics",
				PONumber:    "12345",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "unparseable start time",
			req: dto.CreateBookingRequest{
				DockID:      "dock-1",
				StartTime:   "tomorrow at nine",
				EndTime:     "2026-09-01T10:00:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-12345",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "duration not matching slot width",
			req: dto.CreateBookingRequest{
				DockID:      "dock-1",
				StartTime:   "2026-09-01T09:00:00",
				EndTime:     "2026-09-01T10:30:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-12345",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "dock does not exist",
			req: dto.CreateBookingRequest{
				DockID:      "ghost-dock",
				StartTime:   "2026-09-01T09:00:00",
				EndTime:     "2026-09-01T10:00:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-12345",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "overlapping booking",
			req: dto.CreateBookingRequest{
				DockID:      "dock-1",
				StartTime:   "2026-09-01T09:00:00",
				EndTime:     "2026-09-01T10:00:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-12345",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyDriverID, "driver-id-1")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.DockID, res.DockID)
				assert.Equal(t, string(scheduling.StatusConfirmed), res.Status)
				assert.True(t, len(res.BookingRef) > 3)
			}
		})
	}
}

func TestBookingService_WizardCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	// One general dock and one cold storage dock; the cold storage dock has
	// its 09:00 slot taken.
	docks := []dockModel.Dock{
		{ID: "dock-a", Name: "Dock A", Capabilities: pq.StringArray{"General"}, Active: true},
		{ID: "dock-c", Name: "Dock C", Capabilities: pq.StringArray{"General", "Cold Storage"}, Active: true},
	}

	nineAM, _ := time.Parse(constant.WallClockFormat, "2026-09-01T09:00:00")
	bookings := []model.Booking{
		{
			ID:        "existing-1",
			DockID:    "dock-c",
			StartTime: nineAM,
			EndTime:   nineAM.Add(time.Hour),
			Status:    string(scheduling.StatusConfirmed),
		},
	}

	tests := []struct {
		name      string
		req       dto.WizardBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantDock  string
	}{
		{
			name: "cold storage slot taken",
			req: dto.WizardBookingRequest{
				LoadType:    "Cold Storage",
				Date:        "2026-09-01",
				Slot:        "09:00",
				CarrierName: "Polar Freight",
				PONumber:    "PO-7777",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(docks, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cold storage assigned to free slot",
			req: dto.WizardBookingRequest{
				LoadType:    "Cold Storage",
				Date:        "2026-09-01",
				Slot:        "10:00",
				CarrierName: "Polar Freight",
				PONumber:    "PO-7777",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(docks, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)

				mockDockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-c", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantDock: "dock-c",
		},
		{
			name: "general load first-fits the general dock",
			req: dto.WizardBookingRequest{
				LoadType:    "General",
				Date:        "2026-09-01",
				Slot:        "09:00",
				CarrierName: "Acme Logistics",
				PONumber:    "PO-2222",
			},
			setupMock: func() {
				mockDockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(docks, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookings, nil)

				mockDockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-a", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantDock: "dock-a",
		},
		{
			name: "po number without prefix",
			req: dto.WizardBookingRequest{
				LoadType:    "General",
				Date:        "2026-09-01",
				Slot:        "09:00",
				CarrierName: "Acme Logistics",
				PONumber:    "2222",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyDriverID, "driver-id-1")
			res, err := svc.WizardCreate(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantDock, res.DockID)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss falls through to repository",
			id:   "booking-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", DockID: "dock-1"}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cache hit skips repository",
			id:   "booking-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown booking",
			id:   "ghost-booking",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_DragReschedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	nineAM, _ := time.Parse(constant.WallClockFormat, "2026-09-01T09:00:00")
	booking := model.Booking{
		ID:          "booking-1",
		DockID:      "dock-1",
		BookingDate: nineAM.Truncate(24 * time.Hour),
		StartTime:   nineAM,
		EndTime:     nineAM.Add(time.Hour),
		CarrierName: "Acme Logistics",
		PONumber:    "PO-12345",
		BookingRef:  "BK-TEST0001",
		Status:      string(scheduling.StatusConfirmed),
	}

	lateBooking := booking
	lateBooking.Status = string(scheduling.StatusLate)

	// With a 1600px timeline showing 16 hours, 100px equals one hour.
	tests := []struct {
		name          string
		req           dto.DragRescheduleRequest
		setupMock     func()
		wantErr       bool
		wantNoOp      bool
		wantShift     float64
		wantStatus    string
		wantSyncState string
	}{
		{
			name: "drop without movement is a no-op",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-1",
				PixelDelta:      10,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantNoOp:      true,
			wantSyncState: "Clean",
		},
		{
			name: "two hour shift persists and reconciles",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-1",
				PixelDelta:      200,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantShift:     2,
			wantStatus:    string(scheduling.StatusConfirmed),
			wantSyncState: "Reconciled",
		},
		{
			name: "shift onto an occupied slot conflicts",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-1",
				PixelDelta:      300,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				// The moved window is checked with the booking's own id
				// excluded, so only other bookings can collide.
				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "late booking shifted to next day becomes rescheduled",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-1",
				PixelDelta:      1600,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lateBooking, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantShift:     16,
			wantStatus:    string(scheduling.StatusRescheduled),
			wantSyncState: "Reconciled",
		},
		{
			name: "persist failure reverts the optimistic update",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-2",
				PixelDelta:      100,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					OverlapExists(gomock.Any(), "dock-2", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("write failed"))
			},
			wantErr: true,
		},
		{
			name: "unknown booking",
			req: dto.DragRescheduleRequest{
				DropDockID:      "dock-1",
				PixelDelta:      200,
				TimelineWidthPx: 1600,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyDriverID, "admin-id-1")
			res, err := svc.DragReschedule(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantNoOp, res.NoOp)
			assert.Equal(t, tt.wantSyncState, res.SyncState)

			if !tt.wantNoOp {
				assert.Equal(t, tt.wantShift, res.HoursShift)
				assert.Equal(t, tt.wantStatus, res.Booking.Status)
			}
		})
	}
}

func TestBookingService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	docks := []dockModel.Dock{
		{ID: "dock-c", Name: "Dock C", Capabilities: pq.StringArray{"Cold Storage"}, Active: true},
	}

	nineAM, _ := time.Parse(constant.WallClockFormat, "2026-09-01T09:00:00")
	bookings := []model.Booking{
		{
			ID:        "existing-1",
			DockID:    "dock-c",
			StartTime: nineAM,
			EndTime:   nineAM.Add(time.Hour),
			Status:    string(scheduling.StatusConfirmed),
		},
	}

	t.Run("occupied slot is unavailable, rest of window open", func(t *testing.T) {
		mockDockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(docks, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookings, nil)

		res, err := svc.Availability(context.Background(), "2026-09-01", "Cold Storage")
		assert.NoError(t, err)
		assert.Len(t, res.Slots, 16)

		bySlot := map[string]bool{}
		for _, slot := range res.Slots {
			bySlot[slot.Slot] = slot.Available
		}

		assert.False(t, bySlot["09:00"])
		assert.True(t, bySlot["10:00"])
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.Availability(context.Background(), "September 1st", "General")
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_ValidatePO(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockDockRepo := dockMocks.NewMockDock(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOdoo := odooMocks.NewMockOdoo(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockDockRepo, newTestConfig(), mockCache, mockKafka, mockOdoo, mockOtel)

	tests := []struct {
		name      string
		poNumber  string
		setupMock func()
		wantErr   bool
		wantValid bool
	}{
		{
			name:      "missing prefix short-circuits without calling odoo",
			poNumber:  "12345",
			setupMock: func() {},
			wantValid: false,
		},
		{
			name:     "valid purchase order",
			poNumber: "PO-12345",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockOdoo.EXPECT().
					ValidatePurchaseOrder(gomock.Any(), "PO-12345").
					Return(&odoo.PurchaseOrder{ID: 42, Partner: "Acme Supplies"}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantValid: true,
		},
		{
			name:     "unknown purchase order",
			poNumber: "PO-99999",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockOdoo.EXPECT().
					ValidatePurchaseOrder(gomock.Any(), "PO-99999").
					Return(nil, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantValid: false,
		},
		{
			name:     "odoo unreachable",
			poNumber: "PO-12345",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockOdoo.EXPECT().
					ValidatePurchaseOrder(gomock.Any(), "PO-12345").
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ValidatePO(context.Background(), tt.poNumber)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantValid, res.Valid)
			}
		})
	}
}
