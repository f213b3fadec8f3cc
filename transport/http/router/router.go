package router

import (
	"simpledock/internal/handlers/booking"
	"simpledock/internal/handlers/dock"
	"simpledock/internal/handlers/driver"
	"simpledock/internal/handlers/report"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Driver  driver.Handler
	Dock    dock.Handler
	Booking booking.Handler
	Report  report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Driver.Router(routerGroup)
		r.DomainHandlers.Dock.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
