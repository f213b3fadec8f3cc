// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"simpledock/config"
	"simpledock/infras/jwt"
	"simpledock/infras/kafka"
	"simpledock/infras/odoo"
	"simpledock/infras/otel"
	"simpledock/infras/postgres"
	"simpledock/infras/redis"
	"simpledock/infras/s3"
	repository2 "simpledock/internal/domains/booking/repository"
	service3 "simpledock/internal/domains/booking/service"
	repository3 "simpledock/internal/domains/dock/repository"
	service2 "simpledock/internal/domains/dock/service"
	"simpledock/internal/domains/driver/repository"
	"simpledock/internal/domains/driver/service"
	service4 "simpledock/internal/domains/report/service"
	"simpledock/internal/handlers/booking"
	"simpledock/internal/handlers/dock"
	"simpledock/internal/handlers/driver"
	"simpledock/internal/handlers/report"
	"simpledock/permissions"
	"simpledock/shared/cache"
	"simpledock/transport/http"
	"simpledock/transport/http/middleware"
	"simpledock/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryDriver := repository.New(connection, otelOtel)
	repositoryBooking := repository2.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceDriver := service.New(repositoryDriver, repositoryBooking, configConfig, otelOtel, jwtJWT)
	handler := driver.New(serviceDriver, otelOtel)
	repositoryDock := repository3.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceDock := service2.New(repositoryDock, repositoryBooking, configConfig, redisCache, otelOtel)
	dockHandler := dock.New(serviceDock, otelOtel)
	kafkaClient := kafka.New(configConfig)
	odooOdoo := odoo.New(configConfig, otelOtel)
	serviceBooking := service3.New(repositoryBooking, repositoryDock, configConfig, redisCache, kafkaClient, odooOdoo, otelOtel)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceReport := service4.New(repositoryBooking, repositoryDock, s3S3, configConfig, otelOtel)
	reportHandler := report.New(serviceReport, otelOtel)
	domainHandlers := router.DomainHandlers{
		Driver:  handler,
		Dock:    dockHandler,
		Booking: bookingHandler,
		Report:  reportHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New, odoo.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var dockDomain = wire.NewSet(repository3.New, service2.New)

var bookingDomain = wire.NewSet(repository2.New, service3.New)

var driverDomain = wire.NewSet(repository.New, service.New)

var reportDomain = wire.NewSet(service4.New)

var domains = wire.NewSet(
	dockDomain,
	bookingDomain,
	driverDomain,
	reportDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), driver.New, dock.New, booking.New, report.New, router.New)
