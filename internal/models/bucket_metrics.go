package models

// BucketMetrics is the value accumulated per time bucket. VolumeMB is the
// store-native byte count scaled by 1e-6 at accumulation time; the scaling is
// a display convention, not truncation.
type BucketMetrics struct {
	RequestCount int64   `json:"requestCount"`
	LineCount    int64   `json:"lineCount"`
	ErrorCount   int64   `json:"errorCount"`
	VolumeMB     float64 `json:"volumeMb"`
}

// Add returns the component-wise sum of m and other. Merging partial
// aggregates must always add, never overwrite.
func (m BucketMetrics) Add(other BucketMetrics) BucketMetrics {
	return BucketMetrics{
		RequestCount: m.RequestCount + other.RequestCount,
		LineCount:    m.LineCount + other.LineCount,
		ErrorCount:   m.ErrorCount + other.ErrorCount,
		VolumeMB:     m.VolumeMB + other.VolumeMB,
	}
}
