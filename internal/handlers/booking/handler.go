package booking

import (
	"net/http"

	"simpledock/infras/otel"
	"simpledock/internal/domains/booking/model"
	"simpledock/internal/domains/booking/model/dto"
	"simpledock/internal/domains/booking/service"
	"simpledock/internal/scheduling"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/failure"
	"simpledock/shared/validator"
	"simpledock/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/wizard", handler.WizardCreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/validate-po", handler.ValidatePO)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Put("/{id}/drag", handler.DragReschedule)
	})
}

// CreateBooking books a dock directly by dock id.
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully: " + booking.BookingRef)

	response.WithJSON(w, http.StatusCreated, booking)
}

// WizardCreateBooking books by load type, date and slot; the resolver assigns
// the first free capable dock at submission time.
func (handler *Handler) WizardCreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WizardCreateBooking")
	defer scope.End()

	req := dto.WizardBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.WizardCreate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking through wizard")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard booking created successfully: " + booking.BookingRef)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings, optionally filtered by date and/or dock.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	dockID := r.URL.Query().Get(constant.RequestParamDockID)
	status := r.URL.Query().Get(model.FieldStatus)
	date := r.URL.Query().Get(constant.RequestParamDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if dockID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDockID,
			Operator: gDto.FilterOperatorEq,
			Value:    dockID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetAvailability returns the wizard's slot grid for a date and load type.
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	loadType := r.URL.Query().Get(constant.RequestParamLoadType)

	if date == "" || loadType == "" {
		response.WithError(w, failure.BadRequestFromString("date and load_type query parameters are required"))

		return
	}

	if !scheduling.LoadType(loadType).Valid() {
		response.WithError(w, failure.BadRequestFromString("unknown load_type"))

		return
	}

	availability, err := handler.service.Availability(ctx, date, loadType)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability resolved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// ValidatePO checks a purchase order number against the ERP.
func (handler *Handler) ValidatePO(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidatePO")
	defer scope.End()

	poNumber := r.URL.Query().Get(constant.RequestParamPO)
	if poNumber == "" {
		response.WithError(w, failure.BadRequestFromString("po query parameter is required"))

		return
	}

	result, err := handler.service.ValidatePO(ctx, poNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate purchase order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Purchase order validated")

	response.WithJSON(w, http.StatusOK, result)
}

// GetBookingByID retrieves a booking by its ID.
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking partially updates a booking's status, dock or times.
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// DragReschedule maps a timeline drop onto a reschedule.
func (handler *Handler) DragReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DragReschedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DragRescheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.DragReschedule(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to drag reschedule booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking drag handled")

	response.WithJSON(w, http.StatusOK, result)
}
