package models

import "time"

// Per-dimension metric tuples. Each mirrors the columns of one rollup table
// in the usage report.

type UserMetrics struct {
	RequestCount int64 `json:"requestCount"`
	LineCount    int64 `json:"lineCount"`
	ErrorCount   int64 `json:"errorCount"`
	SizeBytes    int64 `json:"sizeBytes"`
}

type NetworkMetrics struct {
	RequestCount int64 `json:"requestCount"`
	LineCount    int64 `json:"lineCount"`
	NodataCount  int64 `json:"nodataCount"`
	ErrorCount   int64 `json:"errorCount"`
	SizeBytes    int64 `json:"sizeBytes"`
}

type TypeMetrics struct {
	RequestCount int64 `json:"requestCount"`
	LineCount    int64 `json:"lineCount"`
	ErrorCount   int64 `json:"errorCount"`
}

type VolumeMetrics struct {
	Count      int64 `json:"count"`
	ErrorCount int64 `json:"errorCount"`
	SizeBytes  int64 `json:"sizeBytes"`
}

type StationMetrics struct {
	LineCount       int64 `json:"lineCount"`
	NodataCount     int64 `json:"nodataCount"`
	ErrorCount      int64 `json:"errorCount"`
	SizeBytes       int64 `json:"sizeBytes"`
	DurationSeconds int64 `json:"durationSeconds"`
}

type IPMetrics struct {
	RequestCount int64 `json:"requestCount"`
	LineCount    int64 `json:"lineCount"`
	ErrorCount   int64 `json:"errorCount"`
}

// UsageRollups is the result of one aggregation pass: seven independent
// dimension rollups plus global totals. All maps are built in a single pass
// over the accepted request stream; no rollup depends on another having
// finished.
type UsageRollups struct {
	ByUser     map[string]UserMetrics    `json:"byUser"`
	ByNetwork  map[string]NetworkMetrics `json:"byNetwork"`
	ByType     map[string]TypeMetrics    `json:"byType"`
	ByVolume   map[string]VolumeMetrics  `json:"byVolume"`
	ByStation  map[string]StationMetrics `json:"byStation"`
	ByMessage  map[string]int64          `json:"byMessage"`
	ByUserIP   map[string]IPMetrics      `json:"byUserIp"`
	ByClientIP map[string]IPMetrics      `json:"byClientIp"`

	TotalLineCount  int64            `json:"totalLineCount"`
	ErrorRequestIDs map[string]int64 `json:"errorRequestIds"`
	FirstCreated    time.Time        `json:"firstCreated"`
	LastCreated     time.Time        `json:"lastCreated"`
}

// NewEmptyUsageRollups returns rollups with all maps allocated. The observed
// span is seeded inverted (first=end, last=start) so that any accepted
// request narrows it.
func NewEmptyUsageRollups(start, end time.Time) *UsageRollups {
	return &UsageRollups{
		ByUser:          make(map[string]UserMetrics),
		ByNetwork:       make(map[string]NetworkMetrics),
		ByType:          make(map[string]TypeMetrics),
		ByVolume:        make(map[string]VolumeMetrics),
		ByStation:       make(map[string]StationMetrics),
		ByMessage:       make(map[string]int64),
		ByUserIP:        make(map[string]IPMetrics),
		ByClientIP:      make(map[string]IPMetrics),
		ErrorRequestIDs: make(map[string]int64),
		FirstCreated:    end,
		LastCreated:     start,
	}
}

// TotalErrorCount sums the per-request error counts of ErrorRequestIDs.
func (u *UsageRollups) TotalErrorCount() int64 {
	var total int64
	for _, c := range u.ErrorRequestIDs {
		total += c
	}
	return total
}

// TotalSizeBytes sums delivered bytes over the volume rollup.
func (u *UsageRollups) TotalSizeBytes() int64 {
	var total int64
	for _, v := range u.ByVolume {
		total += v.SizeBytes
	}
	return total
}
