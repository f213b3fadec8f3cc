package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/otel"
	bookingModel "simpledock/internal/domains/booking/model"
	bookingRepo "simpledock/internal/domains/booking/repository"
	"simpledock/internal/domains/dock/model"
	"simpledock/internal/domains/dock/model/dto"
	"simpledock/internal/domains/dock/repository"
	"simpledock/internal/scheduling"
	"simpledock/shared"
	"simpledock/shared/cache"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/failure"
	"simpledock/shared/timezone"
)

const (
	cacheGetDock    = "dock:get"
	cacheGetAllDock = "dock:gets"
	cacheCountDock  = "dock:count"

	// utilizationSlots is the nominal slot count a dock can serve in a day.
	utilizationSlots = 8
)

type Dock interface {
	Create(ctx context.Context, req dto.CreateDockRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocksResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DockResponse, error)
	Update(ctx context.Context, req dto.UpdateDockRequest, id string) error
	Delete(ctx context.Context, id string) error
	Metrics(ctx context.Context) (dto.GetDockMetricsResponse, error)
}

type serviceImpl struct {
	repo        repository.Dock
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Dock, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dock {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDockRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)

	nameTaken, err := s.repo.Exist(ctx, shared.FilterByID(req.Name, model.FieldName, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dock name exists")

		return fmt.Errorf("failed to check if dock name exists: %w", err)
	}

	if nameTaken {
		return failure.Conflict("dock name already in use") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create dock")

		return fmt.Errorf("failed to create dock: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDock)
		shared.InvalidateCaches(c, s.cache, cacheCountDock)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDock, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for docks")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count docks")

		return res, fmt.Errorf("failed to count docks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get docks")

		return res, fmt.Errorf("failed to get docks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save docks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDock, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dock count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count docks")

		return res, fmt.Errorf("failed to count docks: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dock count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDock, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dock")

		return res, nil
	}

	dock, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dock")

		return res, fmt.Errorf("failed to get dock: %w", err)
	}

	if dock.ID == constant.Empty {
		return res, failure.NotFound("dock not found") // nolint:wrapcheck
	}

	res.FromModel(dock)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dock to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDockRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dock exists")

		return fmt.Errorf("failed to check if dock exists: %w", err)
	}

	if !exist {
		log.Error().Msg("dock not found")

		return failure.NotFound("dock not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if len(updatedFields) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update dock")

		return fmt.Errorf("failed to update dock: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDock, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete dock from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDock)
		shared.InvalidateCaches(c, s.cache, cacheCountDock)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dock exists")

		return fmt.Errorf("failed to check if dock exists: %w", err)
	}

	if !exist {
		log.Error().Msg("dock not found")

		return failure.NotFound("dock not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete dock")

		return fmt.Errorf("failed to delete dock: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDock, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete dock from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDock)
		shared.InvalidateCaches(c, s.cache, cacheCountDock)
	}()

	return nil
}

// Metrics computes today's per-dock dashboard summary: the non-cancelled
// booking count, a capped utilization percentage, and the next arrival.
func (s *serviceImpl) Metrics(ctx context.Context) (res dto.GetDockMetricsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Metrics")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	today := now.Format(scheduling.DayFormat)

	docks, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get docks for metrics")

		return res, fmt.Errorf("failed to get docks for metrics: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx,
		gDto.QueryParams{SortBy: bookingModel.FieldStartTime, SortDir: "ASC"},
		gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    bookingModel.FieldBookingDate,
					Operator: gDto.FilterOperatorGreaterEq,
					Value:    today,
					Table:    bookingModel.TableName,
				},
				gDto.Filter{
					Field:    bookingModel.FieldStatus,
					Operator: gDto.FilterOperatorNotEq,
					Value:    string(scheduling.StatusCancelled),
					Table:    bookingModel.TableName,
				},
			},
		})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for metrics")

		return res, fmt.Errorf("failed to get bookings for metrics: %w", err)
	}

	res.Date = today
	res.Metrics = make([]dto.DockMetrics, len(docks))

	for i, dock := range docks {
		metrics := dto.DockMetrics{
			DockID: dock.ID,
			Name:   dock.Name,
		}

		for _, booking := range bookings {
			if booking.DockID != dock.ID {
				continue
			}

			if booking.StartTime.Format(scheduling.DayFormat) == today {
				metrics.TodayBookings++
			}

			if metrics.NextArrival == constant.Empty && !booking.StartTime.Before(now) {
				metrics.NextArrival = fmt.Sprintf("%s - %s", booking.StartTime.Format(scheduling.SlotFormat), booking.CarrierName)
			}
		}

		metrics.Utilization = min(metrics.TodayBookings*100/utilizationSlots, 100)
		res.Metrics[i] = metrics
	}

	return res, nil
}
