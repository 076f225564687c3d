package reports

import (
	"time"

	"reqlog-analytics/internal/models"
)

// ReportKind selects the report operation. Dispatch over report kind is a
// tagged enum resolved by the routing layer, not a string-keyed handler map.
type ReportKind string

const (
	KindSummary  ReportKind = "summary"
	KindRequests ReportKind = "requests"
	KindChart    ReportKind = "chart"
)

// BucketDimension selects which of the counter's bucket mappings a chart
// report returns.
type BucketDimension string

const (
	DimensionHourly    BucketDimension = "hourly"
	DimensionDaily     BucketDimension = "daily"
	DimensionMonthly   BucketDimension = "monthly"
	DimensionWeekdaily BucketDimension = "weekdaily"
)

// ChartParameter names the metric component a chart plots. The report
// carries full bucket metrics either way; the parameter is echoed so the
// rendering layer knows which column the caller asked for.
type ChartParameter string

const (
	ParameterRequests ChartParameter = "requests"
	ParameterLines    ChartParameter = "lines"
	ParameterErrors   ChartParameter = "errors"
	ParameterBytes    ChartParameter = "bytes"
)

// Session is the explicit per-invocation context value echoed in report
// responses. There is no process-wide session table; a session lives exactly
// as long as the report call it was created for.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportRequest carries the already-parsed semantic filter values for one
// report invocation. UserID and StreamID may contain the caller's wildcards
// (* and ?); the service refines them in two passes — SQL-LIKE for the
// store's coarse query, wildcardless exact segments for the in-process
// selector.
type ReportRequest struct {
	Start time.Time
	End   time.Time

	RequestID string
	UserID    string
	Type      string
	StreamID  string
	NetClass  string

	Restricted *bool
	OnlyErrors bool
	WantLines  bool
	VolumeID   string
	Message    string
	UserIP     *string
	ClientIP   *string

	Plotting  BucketDimension
	Parameter ChartParameter
}

// SummaryReport is the structured output of the summary rollup pass.
type SummaryReport struct {
	Session     Session   `json:"session"`
	GeneratedAt time.Time `json:"generatedAt"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`

	RequestCount      int    `json:"requestCount"`
	ErrorRequestCount int    `json:"errorRequestCount"`
	ErrorCount        int64  `json:"errorCount"`
	UserCount         int    `json:"userCount"`
	StationCount      int    `json:"stationCount"`
	TotalLineCount    int64  `json:"totalLineCount"`
	TotalSizeBytes    int64  `json:"totalSizeBytes"`
	TotalSizeDisplay  string `json:"totalSizeDisplay"`

	Rollups *models.UsageRollups `json:"rollups"`
}

// RequestsReport lists the accepted request projections for tabular display.
type RequestsReport struct {
	Session     Session                 `json:"session"`
	GeneratedAt time.Time               `json:"generatedAt"`
	OnlyErrors  bool                    `json:"onlyErrors"`
	Requests    []*models.RequestRecord `json:"requests"`
}

// ChartBucket is one dense time bucket of a chart series. Key is the opaque
// sort key; Label is the display form (weekday keys lose their ordinal
// prefix, all other dimensions display the key itself).
type ChartBucket struct {
	Key     string               `json:"key"`
	Label   string               `json:"label"`
	Metrics models.BucketMetrics `json:"metrics"`
}

// ChartReport is a dense, sorted series over one bucket dimension, plus the
// totals row.
type ChartReport struct {
	Session     Session              `json:"session"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Start       time.Time            `json:"start"`
	End         time.Time            `json:"end"`
	Dimension   BucketDimension      `json:"dimension"`
	Parameter   ChartParameter       `json:"parameter"`
	Buckets     []ChartBucket        `json:"buckets"`
	Total       models.BucketMetrics `json:"total"`
}
