package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/otel"
	"simpledock/infras/s3"
	bookingModel "simpledock/internal/domains/booking/model"
	bookingRepo "simpledock/internal/domains/booking/repository"
	dockModel "simpledock/internal/domains/dock/model"
	dockRepo "simpledock/internal/domains/dock/repository"
	"simpledock/internal/domains/report/model/dto"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/failure"
	"simpledock/shared/timezone"
)

var scheduleHeaders = []string{"Time Slot", "Carrier", "PO Number", "Dock", "Status"}

var driverHeaders = []string{"Driver Name", "Carrier", "Phone", "Total Visits", "Last Visit", "Status"}

type Report interface {
	ScheduleCSV(ctx context.Context, date string) (dto.ReportFile, error)
	DriversCSV(ctx context.Context) (dto.ReportFile, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	docks    dockRepo.Dock
	s3       s3.S3
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, docks dockRepo.Dock, s3 s3.S3, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookings: bookings,
		docks:    docks,
		s3:       s3,
		cfg:      cfg,
		otel:     otel,
	}
}

// ScheduleCSV renders the day's schedule as a CSV export. Free-text cells
// are double-quoted, fixed-format cells are written bare.
func (s *serviceImpl) ScheduleCSV(ctx context.Context, date string) (res dto.ReportFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ScheduleCSV")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.Parse(constant.DayFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	dockModels, err := s.docks.GetAll(ctx, gDto.QueryParams{SortBy: dockModel.FieldName, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get docks for schedule report")

		return res, fmt.Errorf("failed to get docks for schedule report: %w", err)
	}

	dockNames := make(map[string]string, len(dockModels))
	for _, d := range dockModels {
		dockNames[d.ID] = d.Name
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{SortBy: bookingModel.FieldStartTime, SortDir: "ASC"}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for schedule report")

		return res, fmt.Errorf("failed to get bookings for schedule report: %w", err)
	}

	rows := make([][]string, len(bookings))
	for i, b := range bookings {
		dockName, ok := dockNames[b.DockID]
		if !ok {
			dockName = b.DockID
		}

		rows[i] = []string{
			b.StartTime.Format(constant.SlotTimeFormat),
			quoteCell(b.CarrierName),
			quoteCell(b.PONumber),
			quoteCell(dockName),
			b.Status,
		}
	}

	res.FileName = fmt.Sprintf("dashboard_schedule_%s.csv", date)
	res.ContentType = constant.ContentTypeCSV
	res.Data = renderCSV(scheduleHeaders, rows)
	res.ArchiveURL = s.archive(ctx, res.FileName, res.Data)

	return res, nil
}

// DriversCSV renders the driver registry as a CSV export.
func (s *serviceImpl) DriversCSV(ctx context.Context) (res dto.ReportFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DriversCSV")
	defer scope.End()
	defer scope.TraceIfError(err)

	summaries, err := s.bookings.DriverSummaries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get driver summaries for report")

		return res, fmt.Errorf("failed to get driver summaries for report: %w", err)
	}

	rows := make([][]string, len(summaries))
	for i, d := range summaries {
		name := d.DriverName
		if name == constant.Empty {
			name = "N/A"
		}

		carrier := d.CarrierName
		if carrier == constant.Empty {
			carrier = "Unknown"
		}

		rows[i] = []string{
			quoteCell(name),
			quoteCell(carrier),
			quoteCell(d.DriverPhone),
			strconv.Itoa(d.TotalVisits),
			d.LastVisit.Format(time.RFC3339),
			"Active",
		}
	}

	res.FileName = fmt.Sprintf("drivers_%s.csv", timezone.Now().Format(constant.DayFormat))
	res.ContentType = constant.ContentTypeCSV
	res.Data = renderCSV(driverHeaders, rows)
	res.ArchiveURL = s.archive(ctx, res.FileName, res.Data)

	return res, nil
}

// archive copies the export to object storage. Failures only cost the
// archive copy, never the download itself.
func (s *serviceImpl) archive(ctx context.Context, fileName string, data []byte) string {
	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, s.cfg.External.S3.ReportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Warn().Err(err).Str("file_name", fileName).Msg("failed to archive report to object storage")

		return constant.Empty
	}

	return url
}

// quoteCell wraps a free-text value in double quotes, doubling any embedded
// quote. Fixed-format cells (times, counts, statuses) are written without
// quoting so the output matches what the dashboard export produced.
func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func renderCSV(headers []string, rows [][]string) []byte {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}

	return []byte(strings.Join(lines, "\n"))
}
