package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/jwt"
	"simpledock/infras/otel"
	bookingRepo "simpledock/internal/domains/booking/repository"
	"simpledock/internal/domains/driver/model"
	"simpledock/internal/domains/driver/model/dto"
	"simpledock/internal/domains/driver/repository"
	"simpledock/shared/constant"
	gDto "simpledock/shared/dto"
	"simpledock/shared/failure"
	"simpledock/shared/password"
)

type Driver interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.DriverResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Me(ctx context.Context, driverID string) (dto.DriverResponse, error)
	Registry(ctx context.Context) (dto.GetDriversResponse, error)
}

type serviceImpl struct {
	repo        repository.Driver
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(repo repository.Driver, bookingRepo bookingRepo.Booking, cfg *config.Config, otel otel.Otel, jwtService jwt.JWT) Driver {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwtService,
	}
}

func phoneFilter(phone string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPhone,
				Operator: gDto.FilterOperatorEq,
				Value:    phone,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.DriverResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Signup")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, phoneFilter(req.Phone))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if driver exists")

		return res, fmt.Errorf("failed to check if driver exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("phone number already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	driver := req.ToModel(hashedPassword)

	if err = s.repo.Insert(ctx, driver); err != nil {
		log.Error().Err(err).Msg("failed to create driver")

		return res, fmt.Errorf("failed to create driver: %w", err)
	}

	res.FromModel(driver)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	driver, err := s.repo.Get(ctx, phoneFilter(req.Phone))
	if err != nil || driver.ID == constant.Empty {
		log.Warn().Str("phone", req.Phone).Msg("login attempt with unknown phone")

		return res, failure.Unauthorized("incorrect phone or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, driver.Password); err != nil {
		log.Warn().Str("phone", req.Phone).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("incorrect phone or password") // nolint:wrapcheck
	}

	if !driver.Active {
		return res, failure.Forbidden("driver account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(driver.ID, driver.Phone, constant.RoleDriver)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context, driverID string) (res dto.DriverResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	driver, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    driverID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get driver")

		return res, fmt.Errorf("failed to get driver: %w", err)
	}

	if driver.ID == constant.Empty {
		return res, failure.NotFound("driver not found") // nolint:wrapcheck
	}

	res.FromModel(driver)

	return res, nil
}

// Registry aggregates bookings by driver phone into the carrier-facing
// drivers list.
func (s *serviceImpl) Registry(ctx context.Context) (res dto.GetDriversResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Registry")
	defer scope.End()
	defer scope.TraceIfError(err)

	summaries, err := s.bookingRepo.DriverSummaries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate driver registry")

		return res, fmt.Errorf("failed to aggregate driver registry: %w", err)
	}

	res.FromSummaries(summaries)

	return res, nil
}
