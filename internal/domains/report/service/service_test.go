package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"simpledock/config"
	"simpledock/infras/otel/mocks"
	s3Mocks "simpledock/infras/s3/mocks"
	bookingMocks "simpledock/internal/domains/booking/mocks"
	bookingModel "simpledock/internal/domains/booking/model"
	dockMocks "simpledock/internal/domains/dock/mocks"
	dockModel "simpledock/internal/domains/dock/model"
	"simpledock/internal/domains/report/service"
	"simpledock/shared/constant"
	"simpledock/shared/failure"
)

func TestReportService_ScheduleCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockDocks := dockMocks.NewMockDock(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockDocks, mockS3, &config.Config{}, mockOtel)

	nineAM, _ := time.Parse(constant.WallClockFormat, "2026-09-01T09:00:00")
	elevenAM, _ := time.Parse(constant.WallClockFormat, "2026-09-01T11:00:00")

	t.Run("renders quoted free-text cells and bare fixed cells", func(t *testing.T) {
		mockDocks.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]dockModel.Dock{
				{ID: "dock-1", Name: "Dock A", Active: true},
			}, nil)

		mockBookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{
					DockID:      "dock-1",
					StartTime:   nineAM,
					EndTime:     nineAM.Add(time.Hour),
					CarrierName: `Acme "Express" Logistics`,
					PONumber:    "PO-12345",
					Status:      "Confirmed",
				},
				{
					DockID:      "dock-ghost",
					StartTime:   elevenAM,
					EndTime:     elevenAM.Add(time.Hour),
					CarrierName: "Polar Freight",
					PONumber:    "PO-67890",
					Status:      "Late",
				},
			}, nil)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://bucket.s3.amazonaws.com/reports/dashboard_schedule_2026-09-01.csv", nil)

		res, err := svc.ScheduleCSV(context.Background(), "2026-09-01")
		assert.NoError(t, err)
		assert.Equal(t, "dashboard_schedule_2026-09-01.csv", res.FileName)
		assert.Equal(t, constant.ContentTypeCSV, res.ContentType)
		assert.Equal(t, "https://bucket.s3.amazonaws.com/reports/dashboard_schedule_2026-09-01.csv", res.ArchiveURL)

		// Embedded quotes double, the unknown dock falls back to its ID and
		// there is no trailing newline.
		want := "Time Slot,Carrier,PO Number,Dock,Status\n" +
			`09:00,"Acme ""Express"" Logistics","PO-12345","Dock A",Confirmed` + "\n" +
			`11:00,"Polar Freight","PO-67890","dock-ghost",Late`
		assert.Equal(t, want, string(res.Data))
	})

	t.Run("archive failure never fails the export", func(t *testing.T) {
		mockDocks.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]dockModel.Dock{}, nil)

		mockBookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unreachable"))

		res, err := svc.ScheduleCSV(context.Background(), "2026-09-01")
		assert.NoError(t, err)
		assert.Equal(t, "", res.ArchiveURL)
		assert.Equal(t, "Time Slot,Carrier,PO Number,Dock,Status", string(res.Data))
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.ScheduleCSV(context.Background(), "01/09/2026")
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestReportService_DriversCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockDocks := dockMocks.NewMockDock(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockDocks, mockS3, &config.Config{}, mockOtel)

	lastVisit := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)

	mockBookings.EXPECT().
		DriverSummaries(gomock.Any()).
		Return([]bookingModel.DriverSummary{
			{DriverPhone: "+15550001111", DriverName: "Jordan Miles", CarrierName: "Acme Logistics", TotalVisits: 4, LastVisit: lastVisit},
			{DriverPhone: "+15550002222", TotalVisits: 1, LastVisit: lastVisit},
		}, nil)

	mockS3.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("bucket unreachable"))

	res, err := svc.DriversCSV(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, constant.ContentTypeCSV, res.ContentType)
	assert.Contains(t, res.FileName, "drivers_")

	want := "Driver Name,Carrier,Phone,Total Visits,Last Visit,Status\n" +
		`"Jordan Miles","Acme Logistics","+15550001111",4,2026-08-30T14:30:00Z,Active` + "\n" +
		`"N/A","Unknown","+15550002222",1,2026-08-30T14:30:00Z,Active`
	assert.Equal(t, want, string(res.Data))
}
