package http

import (
	"encoding/json"
	"net/http"

	"reqlog-analytics/internal/reports"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type summaryReportHandler struct {
	reportService reports.ReportService
}

func NewSummaryReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &summaryReportHandler{
		reportService: reportService,
	}
}

// Handle processes GET /reports/summary requests.
func (h *summaryReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req, err := parseReportArgs(r)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.Summary(r.Context(), reports.NewSession(), req)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, report)
}

type requestsReportHandler struct {
	reportService reports.ReportService
}

func NewRequestsReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &requestsReportHandler{
		reportService: reportService,
	}
}

// Handle processes GET /reports/requests requests.
func (h *requestsReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req, err := parseReportArgs(r)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.Requests(r.Context(), reports.NewSession(), req)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, report)
}

type chartReportHandler struct {
	reportService reports.ReportService
}

func NewChartReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &chartReportHandler{
		reportService: reportService,
	}
}

// Handle processes GET /reports/chart requests.
func (h *chartReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req, err := parseReportArgs(r)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.Chart(r.Context(), reports.NewSession(), req)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, report)
}

func writeJSONResponse(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
