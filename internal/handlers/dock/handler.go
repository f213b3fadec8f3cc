package dock

import (
	"net/http"

	"simpledock/infras/otel"
	"simpledock/internal/domains/dock/model"
	"simpledock/internal/domains/dock/model/dto"
	"simpledock/internal/domains/dock/service"
	"simpledock/shared"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/validator"
	"simpledock/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dock
	otel    otel.Otel
}

func New(service service.Dock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/docks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDock)
		routerGroup.Get("/", handler.GetDocks)
		routerGroup.Get("/metrics", handler.GetDockMetrics)
		routerGroup.Get("/{id}", handler.GetDockByID)
		routerGroup.Put("/{id}", handler.UpdateDock)
		routerGroup.Delete("/{id}", handler.DeleteDock)
	})
}

// CreateDock registers a new loading dock.
func (handler *Handler) CreateDock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDock")
	defer scope.End()

	req := dto.CreateDockRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create dock")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dock created successfully")

	response.WithMessage(w, http.StatusCreated, "Dock created successfully")
}

// GetDocks lists docks with optional filtering and pagination.
func (handler *Handler) GetDocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	docks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get docks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Docks retrieved successfully")

	response.WithJSON(w, http.StatusOK, docks)
}

// GetDockMetrics returns today's per-dock dashboard summary.
func (handler *Handler) GetDockMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDockMetrics")
	defer scope.End()

	metrics, err := handler.service.Metrics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute dock metrics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dock metrics computed successfully")

	response.WithJSON(w, http.StatusOK, metrics)
}

// GetDockByID retrieves a dock by its ID.
func (handler *Handler) GetDockByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDockByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	dock, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dock by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dock retrieved successfully")

	response.WithJSON(w, http.StatusOK, dock)
}

// UpdateDock updates an existing dock by its ID.
func (handler *Handler) UpdateDock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update dock")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dock updated successfully")

	response.WithMessage(w, http.StatusOK, "Dock updated successfully")
}

// DeleteDock removes a dock by its ID.
func (handler *Handler) DeleteDock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete dock")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dock deleted successfully")

	response.WithMessage(w, http.StatusOK, "Dock deleted successfully")
}
