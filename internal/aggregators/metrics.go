package aggregators

import (
	"reqlog-analytics/internal/shared/metrics"
)

var (
	// metricRecordsAggregated observes the number of request records rolled
	// up per aggregation pass. The line_loading label separates cheap
	// header-only passes from the expensive waveform line-loading ones.
	metricRecordsAggregated = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "records_aggregated",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"line_loading"},
	)
)
