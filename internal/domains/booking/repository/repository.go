package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"simpledock/infras/otel"
	"simpledock/infras/postgres"
	"simpledock/internal/domains/booking/model"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/logger"
	gRepo "simpledock/shared/repository"

	"simpledock/internal/scheduling"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	OverlapExists(ctx context.Context, dockID string, start, end time.Time, excludeID string) (bool, error)
	DriverSummaries(ctx context.Context) ([]model.DriverSummary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapExists reports whether any non-cancelled booking on the dock overlaps
// [start, end). Two bookings overlap when StartA < EndB and EndA > StartB.
// excludeID keeps a booking from colliding with itself on reschedule.
func (repo *repositoryImpl) OverlapExists(ctx context.Context, dockID string, start, end time.Time, excludeID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.OverlapExists")
	defer scope.End()

	query := `SELECT EXISTS(
		SELECT 1 FROM bookings
		WHERE dock_id = :dock_id
		  AND status != :cancelled
		  AND id != :exclude_id
		  AND start_time < :end_time
		  AND end_time > :start_time
	)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"dock_id":    dockID,
		"cancelled":  string(scheduling.StatusCancelled),
		"exclude_id": excludeID,
		"start_time": start,
		"end_time":   end,
	}

	exist := false

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exist, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return exist, nil
}

// DriverSummaries aggregates bookings into the drivers registry, grouped by
// phone number. Rows with empty phones are excluded.
func (repo *repositoryImpl) DriverSummaries(ctx context.Context) ([]model.DriverSummary, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.DriverSummaries")
	defer scope.End()

	query := `SELECT
		driver_phone,
		MAX(driver_name)  AS driver_name,
		MAX(carrier_name) AS carrier_name,
		COUNT(id)         AS total_visits,
		MAX(start_time)   AS last_visit
	FROM bookings
	WHERE driver_phone != ''
	GROUP BY driver_phone
	ORDER BY last_visit DESC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var summaries []model.DriverSummary

	err := repo.db.Read.SelectContext(ctx, &summaries, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to aggregate driver summaries: %w", err)
	}

	return summaries, nil
}
