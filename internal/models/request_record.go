package models

import "time"

// Line and request status values as recorded by the access log.
const (
	LineStatusOK     = "OK"
	LineStatusError  = "ERROR"
	LineStatusNoData = "NODATA"

	// RequestStatusEnd marks a request that ran to completion.
	RequestStatusEnd = "END"
)

// StreamID identifies one channel: network, station, location and channel
// codes. Empty codes are legal in raw log data.
type StreamID struct {
	Network  string `json:"network"`
	Station  string `json:"station"`
	Location string `json:"location"`
	Channel  string `json:"channel"`
}

// StationKey returns the "NET.STA" rollup key for the stream.
func (s StreamID) StationKey() string {
	return s.Network + "." + s.Station
}

// LineStatus is the per-line delivery outcome shared by request lines.
type LineStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	VolumeID  string `json:"volumeId"`
	SizeBytes int64  `json:"sizeBytes"`
}

// StatusLine is the outcome of one delivered (or failed) logical volume
// within a request.
type StatusLine struct {
	VolumeID  string `json:"volumeId"`
	Status    string `json:"status"`
	SizeBytes int64  `json:"sizeBytes"`
	Message   string `json:"message"`
}

// RequestLine is one requested channel/time-window with its individual
// outcome. End before Start is a degenerate zero-length window.
type RequestLine struct {
	Stream      StreamID   `json:"stream"`
	Constraints string     `json:"constraints"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	Restricted  bool       `json:"restricted"`
	Status      LineStatus `json:"status"`
}

// TimeWindow returns the line's requested window, clamped to zero when the
// end precedes the start.
func (l *RequestLine) TimeWindow() time.Duration {
	if l.End.Before(l.Start) {
		return 0
	}
	return l.End.Sub(l.Start)
}

// RequestSummary carries the line totals the log writer attached to a
// finished request. AverageTimeWindowSeconds is -1 when the value did not fit
// the writer's fixed-width representation.
type RequestSummary struct {
	TotalLineCount           int64 `json:"totalLineCount"`
	OkLineCount              int64 `json:"okLineCount"`
	AverageTimeWindowSeconds int64 `json:"averageTimeWindowSeconds"`
}

// RequestRecord is one logged data-access request with its nested outcome
// lines. StatusLines and RequestLines are lazily populated: both start empty
// and are filled at most once by the store's load operations; the
// corresponding Loaded flag records that the load happened, so an empty
// loaded slice is authoritative.
type RequestRecord struct {
	ID        string          `json:"id"`
	Type      RequestType     `json:"type"`
	UserID    string          `json:"userId"`
	UserIP    string          `json:"userIp"`
	ClientID  string          `json:"clientId"`
	ClientIP  string          `json:"clientIp"`
	CreatedAt time.Time       `json:"createdAt"`
	Label     string          `json:"label"`
	Header    string          `json:"header"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Summary   *RequestSummary `json:"summary,omitempty"`

	StatusLines        []StatusLine  `json:"statusLines,omitempty"`
	StatusLinesLoaded  bool          `json:"-"`
	RequestLines       []RequestLine `json:"requestLines,omitempty"`
	RequestLinesLoaded bool          `json:"-"`
}

// ErrorLineCount is totalLineCount - okLineCount, or 0 when the summary is
// missing. A malformed summary is recovered locally, never an error.
func (r *RequestRecord) ErrorLineCount() int64 {
	if r.Summary == nil {
		return 0
	}
	return r.Summary.TotalLineCount - r.Summary.OkLineCount
}

// TotalLineCount returns the summary line total, 0 when the summary is
// missing.
func (r *RequestRecord) TotalLineCount() int64 {
	if r.Summary == nil {
		return 0
	}
	return r.Summary.TotalLineCount
}

// CloneHeader copies the record's scalar fields and summary into a fresh
// record with empty, unloaded sub-lines. Selection uses it to build
// projections holding only the matched lines.
func (r *RequestRecord) CloneHeader() *RequestRecord {
	clone := &RequestRecord{
		ID:        r.ID,
		Type:      r.Type,
		UserID:    r.UserID,
		UserIP:    r.UserIP,
		ClientID:  r.ClientID,
		ClientIP:  r.ClientIP,
		CreatedAt: r.CreatedAt,
		Label:     r.Label,
		Header:    r.Header,
		Status:    r.Status,
		Message:   r.Message,
	}
	if r.Summary != nil {
		summary := *r.Summary
		clone.Summary = &summary
	}
	return clone
}
