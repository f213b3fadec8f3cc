package driver

import (
	"net/http"

	"simpledock/infras/otel"
	"simpledock/internal/domains/driver/model/dto"
	"simpledock/internal/domains/driver/service"
	"simpledock/shared/constant"
	"simpledock/shared/failure"
	"simpledock/shared/validator"
	"simpledock/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Driver
	otel    otel.Otel
}

func New(service service.Driver, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth/driver", func(r chi.Router) {
		r.Post("/signup", handler.Signup)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Get("/me", handler.Me)
	})

	r.Get("/drivers", handler.GetDrivers)
}

// Signup registers a new driver account keyed by phone number.
func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signup")
	defer scope.End()

	req := dto.SignupRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driver, err := handler.service.Signup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up driver")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Driver signed up successfully")

	response.WithJSON(w, http.StatusCreated, driver)
}

// Login exchanges phone + password for a token pair.
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login driver")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Driver logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken issues a new token pair from a refresh token.
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Me returns the driver behind the bearer token.
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	driverID, ok := ctx.Value(constant.ContextKeyDriverID).(string)
	if !ok || driverID == constant.Empty {
		log.Error().Msg("failed to get driver ID from context")

		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	driver, err := handler.service.Me(ctx, driverID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current driver")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Current driver retrieved successfully")

	response.WithJSON(w, http.StatusOK, driver)
}

// GetDrivers returns the registry aggregated from bookings.
func (handler *Handler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrivers")
	defer scope.End()

	drivers, err := handler.service.Registry(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get drivers registry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Drivers registry retrieved successfully")

	response.WithJSON(w, http.StatusOK, drivers)
}
