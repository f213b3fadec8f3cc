package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"simpledock/config"
	"simpledock/infras/otel/mocks"
	bookingMocks "simpledock/internal/domains/booking/mocks"
	bookingModel "simpledock/internal/domains/booking/model"
	dockMocks "simpledock/internal/domains/dock/mocks"
	"simpledock/internal/domains/dock/model"
	"simpledock/internal/domains/dock/model/dto"
	"simpledock/internal/domains/dock/service"
	"simpledock/internal/scheduling"
	cacheMocks "simpledock/shared/cache/mocks"
	"simpledock/shared/constant"
	"simpledock/shared/failure"
	"simpledock/shared/timezone"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return cfg
}

func TestDockService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dockMocks.NewMockDock(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, newTestConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateDockRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateDockRequest{
				Name:         "Dock D",
				Capabilities: []string{"General", "Hazardous"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "name already in use",
			req: dto.CreateDockRequest{
				Name:         "Dock A",
				Capabilities: []string{"General"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository failure",
			req: dto.CreateDockRequest{
				Name:         "Dock D",
				Capabilities: []string{"General"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyDriverID, "admin-id-1")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDockService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dockMocks.NewMockDock(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, newTestConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss falls through to repository",
			id:   "dock-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Dock{ID: "dock-1", Name: "Dock A", Active: true}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cache hit skips repository",
			id:   "dock-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown dock",
			id:   "ghost-dock",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Dock{}, nil)
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

func TestDockService_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dockMocks.NewMockDock(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, newTestConfig(), mockCache, mockOtel)

	docks := []model.Dock{
		{ID: "dock-1", Name: "Dock A", Active: true},
		{ID: "dock-2", Name: "Dock B", Active: true},
	}

	now := timezone.Now()
	upcoming := now.Add(10 * time.Minute)
	later := now.Add(20 * time.Minute)

	bookings := []bookingModel.Booking{
		{ID: "b-1", DockID: "dock-1", StartTime: upcoming, CarrierName: "Acme Logistics", Status: string(scheduling.StatusConfirmed)},
		{ID: "b-2", DockID: "dock-1", StartTime: later, CarrierName: "Polar Freight", Status: string(scheduling.StatusConfirmed)},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(docks, nil)

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)

	res, err := svc.Metrics(context.Background())
	assert.NoError(t, err)
	assert.Len(t, res.Metrics, 2)

	busy := res.Metrics[0]
	assert.Equal(t, "dock-1", busy.DockID)
	assert.Equal(t, 2, busy.TodayBookings)
	assert.Equal(t, 25, busy.Utilization)
	assert.Equal(t, fmt.Sprintf("%s - Acme Logistics", upcoming.Format(scheduling.SlotFormat)), busy.NextArrival)

	idle := res.Metrics[1]
	assert.Equal(t, "dock-2", idle.DockID)
	assert.Equal(t, 0, idle.TodayBookings)
	assert.Equal(t, 0, idle.Utilization)
	assert.Equal(t, "", idle.NextArrival)
}
