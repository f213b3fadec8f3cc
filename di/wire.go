//go:build wireinject
// +build wireinject

package di

import (
	"simpledock/config"
	"simpledock/infras/jwt"
	"simpledock/infras/kafka"
	"simpledock/infras/odoo"
	"simpledock/infras/otel"
	"simpledock/infras/postgres"
	"simpledock/infras/redis"
	"simpledock/infras/s3"
	"simpledock/permissions"
	"simpledock/shared/cache"
	"simpledock/transport/http"
	"simpledock/transport/http/middleware"
	"simpledock/transport/http/router"

	"github.com/google/wire"

	bookingRepository "simpledock/internal/domains/booking/repository"
	bookingService "simpledock/internal/domains/booking/service"
	dockRepository "simpledock/internal/domains/dock/repository"
	dockService "simpledock/internal/domains/dock/service"
	driverRepository "simpledock/internal/domains/driver/repository"
	driverService "simpledock/internal/domains/driver/service"
	reportService "simpledock/internal/domains/report/service"

	bookingHandler "simpledock/internal/handlers/booking"
	dockHandler "simpledock/internal/handlers/dock"
	driverHandler "simpledock/internal/handlers/driver"
	reportHandler "simpledock/internal/handlers/report"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	odoo.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var dockDomain = wire.NewSet(
	dockRepository.New,
	dockService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var driverDomain = wire.NewSet(
	driverRepository.New,
	driverService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	dockDomain,
	bookingDomain,
	driverDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	driverHandler.New,
	dockHandler.New,
	bookingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
