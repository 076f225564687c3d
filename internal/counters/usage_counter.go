package counters

import (
	"errors"
	"fmt"
	"time"

	"reqlog-analytics/internal/models"
)

var (
	// ErrInvalidRange is returned when a counter is created with end <= start.
	ErrInvalidRange = errors.New("invalid time range")
)

// UsageCounter accumulates dense time-bucketed usage metrics for charting.
// All four bucket mappings are pre-seeded to zero across the counted range,
// so every bucket appears in a chart series even with no traffic. The hourly
// buckets are time-of-day only ("00".."23"), not tied to a specific day.
//
// A counter belongs to the report invocation that created it; accumulation
// is not deduplicated, callers must feed each request at most once.
type UsageCounter struct {
	Hourly  map[string]models.BucketMetrics
	Daily   map[string]models.BucketMetrics
	Monthly map[string]models.BucketMetrics
	Weekday map[string]models.BucketMetrics
}

// NewUsageCounter seeds daily, monthly and weekday buckets for every day in
// [start, end) and all 24 hourly buckets.
func NewUsageCounter(start, end time.Time) (*UsageCounter, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	counter := &UsageCounter{
		Hourly:  make(map[string]models.BucketMetrics),
		Daily:   make(map[string]models.BucketMetrics),
		Monthly: make(map[string]models.BucketMetrics),
		Weekday: make(map[string]models.BucketMetrics),
	}

	for t := start; t.Before(end); t = t.Add(24 * time.Hour) {
		counter.Daily[models.DayKey(t)] = models.BucketMetrics{}
		counter.Monthly[models.MonthKey(t)] = models.BucketMetrics{}
		counter.Weekday[models.WeekdayKey(t)] = models.BucketMetrics{}
	}
	for hour := 0; hour < 24; hour++ {
		counter.Hourly[fmt.Sprintf("%02d", hour)] = models.BucketMetrics{}
	}

	return counter, nil
}

// Accumulate adds the request's metrics to the four buckets derived from its
// creation time: one request, its summary line and error counts, and the
// summed status-line bytes scaled to megabytes. A record with status lines
// not yet loaded contributes zero volume; callers stream projections whose
// matched status lines are already attached.
func (c *UsageCounter) Accumulate(record *models.RequestRecord) {
	var volumeBytes int64
	for _, statusLine := range record.StatusLines {
		volumeBytes += statusLine.SizeBytes
	}

	delta := models.BucketMetrics{
		RequestCount: 1,
		LineCount:    record.TotalLineCount(),
		ErrorCount:   record.ErrorLineCount(),
		VolumeMB:     float64(volumeBytes) * 1e-6,
	}

	created := record.CreatedAt
	c.Hourly[models.HourKey(created)] = c.Hourly[models.HourKey(created)].Add(delta)
	c.Daily[models.DayKey(created)] = c.Daily[models.DayKey(created)].Add(delta)
	c.Monthly[models.MonthKey(created)] = c.Monthly[models.MonthKey(created)].Add(delta)
	c.Weekday[models.WeekdayKey(created)] = c.Weekday[models.WeekdayKey(created)].Add(delta)
}

// Merge adds every bucket of other into c, component-wise. Workers owning
// private partial counters merge this way; merging never overwrites.
func (c *UsageCounter) Merge(other *UsageCounter) {
	mergeBuckets(c.Hourly, other.Hourly)
	mergeBuckets(c.Daily, other.Daily)
	mergeBuckets(c.Monthly, other.Monthly)
	mergeBuckets(c.Weekday, other.Weekday)
}

func mergeBuckets(dst, src map[string]models.BucketMetrics) {
	for key, metrics := range src {
		dst[key] = dst[key].Add(metrics)
	}
}
