package report

import (
	"fmt"
	"net/http"

	"simpledock/infras/otel"
	"simpledock/internal/domains/report/service"
	"simpledock/shared/constant"
	"simpledock/shared/failure"
	"simpledock/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/schedule", handler.ExportSchedule)
		r.Get("/drivers", handler.ExportDrivers)
	})
}

// ExportSchedule streams the day's schedule as a CSV download.
func (handler *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportSchedule")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("date is required"))

		return
	}

	file, err := handler.service.ScheduleCSV(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export schedule report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule report exported successfully")

	writeFile(w, file.FileName, file.ContentType, file.Data)
}

// ExportDrivers streams the driver registry as a CSV download.
func (handler *Handler) ExportDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportDrivers")
	defer scope.End()

	file, err := handler.service.DriversCSV(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export drivers report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Drivers report exported successfully")

	writeFile(w, file.FileName, file.ContentType, file.Data)
}

func writeFile(w http.ResponseWriter, fileName, contentType string, data []byte) {
	w.Header().Set(constant.RequestHeaderContentType, contentType)
	w.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("failed to write report response")
	}
}
