package http

import (
	"net/http"

	"reqlog-analytics/internal/reports"
	"reqlog-analytics/internal/shared/loggers"
	"reqlog-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(reportService reports.ReportService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	summaryHandler := NewSummaryReportHandler(reportService)
	requestsHandler := NewRequestsReportHandler(reportService)
	chartHandler := NewChartReportHandler(reportService)

	// Routes
	router.Get("/reports/summary", errorHandlingAdapter(summaryHandler))
	router.Get("/reports/requests", errorHandlingAdapter(requestsHandler))
	router.Get("/reports/chart", errorHandlingAdapter(chartHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
