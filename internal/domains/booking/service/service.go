package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/kafka"
	"simpledock/infras/odoo"
	"simpledock/infras/otel"
	"simpledock/internal/domains/booking/model"
	"simpledock/internal/domains/booking/model/dto"
	"simpledock/internal/domains/booking/repository"
	dockModel "simpledock/internal/domains/dock/model"
	dockRepo "simpledock/internal/domains/dock/repository"
	"simpledock/internal/scheduling"
	"simpledock/shared"
	"simpledock/shared/cache"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/failure"
	"simpledock/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheValidatePO    = "booking:po"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	WizardCreate(ctx context.Context, req dto.WizardBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	DragReschedule(ctx context.Context, req dto.DragRescheduleRequest, id string) (dto.DragRescheduleResponse, error)
	Availability(ctx context.Context, date, loadType string) (dto.GetAvailabilityResponse, error)
	ValidatePO(ctx context.Context, poNumber string) (dto.ValidatePOResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	dockRepo dockRepo.Dock
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	odoo     odoo.Odoo
	otel     otel.Otel
}

func New(repo repository.Booking, dockRepo dockRepo.Dock, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, odooClient odoo.Odoo, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		dockRepo: dockRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		odoo:     odooClient,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)

	if !dto.ValidPONumber(req.PONumber) {
		return res, failure.BadRequestFromString(`PO Number must start with "PO-"`) // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = s.validateAndInsert(ctx, &booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) WizardCreate(ctx context.Context, req dto.WizardBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".WizardCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)

	if !dto.ValidPONumber(req.PONumber) {
		return res, failure.BadRequestFromString(`PO Number must start with "PO-"`) // nolint:wrapcheck
	}

	start, err := req.SlotStart()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse wizard slot")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/slot format: %v", err)) // nolint:wrapcheck
	}

	docks, bookings, err := s.daySnapshot(ctx, req.Date)
	if err != nil {
		return res, err
	}

	// The availability shown while the wizard was open may be stale; the
	// resolver re-runs against a fresh snapshot at submission.
	dock, ok := scheduling.FirstAvailableDock(req.Slot, scheduling.LoadType(req.LoadType), docks, bookings)
	if !ok {
		return res, failure.Conflict("no dock available for the requested slot") // nolint:wrapcheck
	}

	slotWidth := time.Duration(s.cfg.App.Schedule.SlotMinutes) * time.Minute
	booking := req.ToModel(dock.ID, start, slotWidth, user)

	if err = s.validateAndInsert(ctx, &booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// validateAndInsert runs the shared server-side checks: the dock must exist,
// the duration must match the configured slot width exactly and no
// non-cancelled booking on the dock may overlap. On success the booking is
// stored, the confirmation event published and read caches invalidated.
func (s *serviceImpl) validateAndInsert(ctx context.Context, booking *model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".validateAndInsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	slotWidth := time.Duration(s.cfg.App.Schedule.SlotMinutes) * time.Minute
	if booking.EndTime.Sub(booking.StartTime) != slotWidth {
		return failure.BadRequestFromString(fmt.Sprintf("booking duration must be exactly %d minutes", s.cfg.App.Schedule.SlotMinutes)) // nolint:wrapcheck
	}

	dockExists, err := s.dockRepo.Exist(ctx, shared.FilterByID(booking.DockID, dockModel.FieldID, dockModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dock exists")

		return fmt.Errorf("failed to check if dock exists: %w", err)
	}

	if !dockExists {
		return failure.BadRequestFromString("dock does not exist") // nolint:wrapcheck
	}

	overlapping, err := s.repo.OverlapExists(ctx, booking.DockID, booking.StartTime, booking.EndTime, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlapping {
		return failure.Conflict("time slot already booked") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, *booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	go s.publishConfirmed(context.WithoutCancel(ctx), *booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

// publishConfirmed emits the booking-confirmed event consumed by the notifier.
// Delivery is best effort; a broker failure never fails the booking.
func (s *serviceImpl) publishConfirmed(ctx context.Context, booking model.Booking) {
	event := model.ConfirmedEvent{}
	event.FromModel(booking, constant.WallClockFormat)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingConfirmed, kafka.Message{
		Key:   booking.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_ref", booking.BookingRef).Msg("failed to publish booking confirmation event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartTime != constant.Empty {
		start, parseErr := time.Parse(constant.WallClockFormat, req.StartTime)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid start_time format: %v", parseErr)) // nolint:wrapcheck
		}

		updatedFields[model.FieldStartTime] = start
		updatedFields[model.FieldBookingDate] = start.Truncate(24 * time.Hour)
	}

	if req.EndTime != constant.Empty {
		end, parseErr := time.Parse(constant.WallClockFormat, req.EndTime)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_time format: %v", parseErr)) // nolint:wrapcheck
		}

		updatedFields[model.FieldEndTime] = end
	}

	if len(updatedFields) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

// DragReschedule maps the raw drop geometry from the admin timeline onto a
// concrete reschedule and persists it. The optimistic update is tracked
// through the sync state machine so the caller knows whether to keep its
// local view or refetch.
func (s *serviceImpl) DragReschedule(ctx context.Context, req dto.DragRescheduleRequest, id string) (res dto.DragRescheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DragReschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyDriverID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for drag reschedule")

		return res, fmt.Errorf("failed to get booking for drag reschedule: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	visibleHours := req.TotalVisibleHours
	if visibleHours <= 0 {
		visibleHours = s.cfg.App.Schedule.EndHour - s.cfg.App.Schedule.StartHour
	}

	result, ok := scheduling.ComputeDragResult(booking.ToSchedulingBooking(), req.DropDockID, req.PixelDelta, req.TimelineWidthPx, visibleHours)
	if !ok {
		res.Booking.FromModel(booking)
		res.NoOp = true
		res.SyncState = scheduling.SyncClean.String()

		return res, nil
	}

	if result.DockID != booking.DockID {
		// Drops across dock rows skip capability re-validation; treated as an
		// admin override and surfaced in the logs for follow-up.
		log.Warn().
			Str("booking_id", booking.ID).
			Str("from_dock", booking.DockID).
			Str("to_dock", result.DockID).
			Msg("drag reassigned dock without capability re-validation")
	}

	// The shifted window is checked against every other booking on the target
	// dock; the booking's own row is excluded so an in-place shift never
	// collides with itself.
	overlapping, err := s.repo.OverlapExists(ctx, result.DockID, result.Start, result.End, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check drag reschedule overlap")

		return res, fmt.Errorf("failed to check drag reschedule overlap: %w", err)
	}

	if overlapping {
		return res, failure.Conflict("time slot already booked") // nolint:wrapcheck
	}

	sync := scheduling.NewEntitySync()
	if err = sync.MarkPending(); err != nil {
		return res, fmt.Errorf("failed to mark booking sync pending: %w", err)
	}

	updatedFields := map[string]any{
		model.FieldDockID:        result.DockID,
		model.FieldStartTime:     result.Start,
		model.FieldEndTime:       result.End,
		model.FieldBookingDate:   result.Start.Truncate(24 * time.Hour),
		model.FieldStatus:        string(result.Status),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to persist drag reschedule")

		if revertErr := sync.Revert(); revertErr != nil {
			log.Error().Err(revertErr).Msg("failed to revert booking sync state")
		}

		res.Booking.FromModel(booking)
		res.SyncState = sync.State().String()

		return res, fmt.Errorf("failed to persist drag reschedule: %w", err)
	}

	if err = sync.Reconcile(); err != nil {
		return res, fmt.Errorf("failed to reconcile booking sync state: %w", err)
	}

	s.invalidateBooking(ctx, id)

	booking.DockID = result.DockID
	booking.StartTime = result.Start
	booking.EndTime = result.End
	booking.BookingDate = result.Start.Truncate(24 * time.Hour)
	booking.Status = string(result.Status)

	res.Booking.FromModel(booking)
	res.HoursShift = result.HoursShift
	res.SyncState = sync.State().String()

	return res, nil
}

// Availability enumerates the configured slot window for a date and load type
// through the resolver, against a fresh snapshot of docks and bookings.
func (s *serviceImpl) Availability(ctx context.Context, date, loadType string) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.Parse(constant.DayFormat, date); err != nil {
		return res, failure.BadRequestFromString("invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	docks, bookings, err := s.daySnapshot(ctx, date)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	slots := scheduling.Slots(s.cfg.App.Schedule.StartHour, s.cfg.App.Schedule.EndHour, s.cfg.App.Schedule.SlotMinutes)

	res.Date = date
	res.LoadType = loadType
	res.Slots = make([]dto.SlotAvailability, len(slots))

	for i, slot := range slots {
		res.Slots[i] = dto.SlotAvailability{
			Slot:      slot,
			Available: scheduling.IsTimeSlotAvailable(slot, scheduling.LoadType(loadType), date, docks, bookings, now),
		}
	}

	return res, nil
}

// ValidatePO checks the purchase order against Odoo. Results are cached so
// wizard keystroke-by-keystroke validation does not hammer the ERP.
func (s *serviceImpl) ValidatePO(ctx context.Context, poNumber string) (res dto.ValidatePOResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidatePO")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !dto.ValidPONumber(poNumber) {
		return res, nil
	}

	cacheKey := shared.BuildCacheKey(cacheValidatePO, poNumber)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for PO validation")

		return res, nil
	}

	order, err := s.odoo.ValidatePurchaseOrder(ctx, poNumber)
	if err != nil {
		log.Error().Err(err).Str("po_number", poNumber).Msg("failed to validate purchase order")

		return res, fmt.Errorf("failed to validate purchase order: %w", err)
	}

	if order != nil {
		res = dto.ValidatePOResponse{
			Valid:   true,
			ID:      order.ID,
			Partner: order.Partner,
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save PO validation to cache")
		}
	}()

	return res, nil
}

// daySnapshot loads every dock plus the full booking list for a date, the
// input the resolver runs against.
func (s *serviceImpl) daySnapshot(ctx context.Context, date string) ([]scheduling.Dock, []scheduling.Booking, error) {
	dockModels, err := s.dockRepo.GetAll(ctx, gDto.QueryParams{SortBy: dockModel.FieldName, SortDir: "ASC"}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    dockModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    dockModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get docks for availability")

		return nil, nil, fmt.Errorf("failed to get docks for availability: %w", err)
	}

	bookingModels, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: "ASC"}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for availability")

		return nil, nil, fmt.Errorf("failed to get bookings for availability: %w", err)
	}

	docks := make([]scheduling.Dock, len(dockModels))
	for i, d := range dockModels {
		docks[i] = d.ToSchedulingDock()
	}

	return docks, model.ToSchedulingBookings(bookingModels), nil
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
