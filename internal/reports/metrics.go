package reports

import (
	"reqlog-analytics/internal/shared/metrics"
)

var (
	// metricReportGeneratedTotal counts report invocations by kind and
	// outcome. The error_code label is empty for successful reports.
	metricReportGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "report_generated_total",
		},
		[]string{"kind", metrics.FieldErrorCode},
	)

	// metricReportRequestsSelected observes how many requests survived
	// selection per report, by kind. Spot checks for filter regressions.
	metricReportRequestsSelected = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "report_requests_selected",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"kind"},
	)
)
