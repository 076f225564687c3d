package http

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"reqlog-analytics/internal/reports"
)

// Query argument names. They mirror the legacy request-log web interface so
// existing bookmarks and scripts keep working.
const (
	argStartTime  = "startTime"
	argEndTime    = "endTime"
	argRequestID  = "requestID"
	argUserID     = "userID"
	argType       = "type"
	argStreamID   = "streamID"
	argNetClass   = "netClass"
	argRestricted = "restricted"
	argOnlyErrors = "onlyErrors"
	argLines      = "lines"
	argVolume     = "volume"
	argMessage    = "message"
	argUserIP     = "userIP"
	argClientIP   = "clientIP"
	argPlotting   = "plotting"
	argParameter  = "parameter1"
)

const (
	valueYes     = "yes"
	valueNo      = "no"
	valueUnknown = "unknown"
)

// Accepted datetime forms, tried in order.
const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
)

// parseReportArgs decodes the report filter from the request's query string.
// The default range is yesterday midnight to tomorrow midnight.
func parseReportArgs(r *http.Request) (*reports.ReportRequest, error) {
	q := r.URL.Query()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start, err := timeArg(q, argStartTime, today.AddDate(0, 0, -1), now)
	if err != nil {
		return nil, err
	}
	end, err := timeArg(q, argEndTime, today.AddDate(0, 0, 1), now)
	if err != nil {
		return nil, err
	}

	req := &reports.ReportRequest{
		Start:      start,
		End:        end,
		RequestID:  q.Get(argRequestID),
		UserID:     q.Get(argUserID),
		Type:       q.Get(argType),
		StreamID:   q.Get(argStreamID),
		NetClass:   q.Get(argNetClass),
		Restricted: restrictedArg(q),
		OnlyErrors: q.Get(argOnlyErrors) == valueYes,
		WantLines:  q.Get(argLines) == valueYes,
		VolumeID:   q.Get(argVolume),
		Message:    q.Get(argMessage),
		UserIP:     ipArg(q, argUserIP),
		ClientIP:   ipArg(q, argClientIP),
	}

	if plotting := q.Get(argPlotting); plotting != "" {
		req.Plotting = reports.BucketDimension(plotting)
		switch req.Plotting {
		case reports.DimensionHourly, reports.DimensionDaily, reports.DimensionMonthly, reports.DimensionWeekdaily:
		default:
			return nil, errBadQueryArgument(argPlotting, plotting, nil)
		}
	}
	if parameter := q.Get(argParameter); parameter != "" {
		req.Parameter = reports.ChartParameter(parameter)
		switch req.Parameter {
		case reports.ParameterRequests, reports.ParameterLines, reports.ParameterErrors, reports.ParameterBytes:
		default:
			return nil, errBadQueryArgument(argParameter, parameter, nil)
		}
	}

	return req, nil
}

// timeArg parses one datetime argument. A bare date means midnight; a bare
// time means that time of the current day.
func timeArg(q url.Values, name string, fallback, now time.Time) (time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}

	if t, err := time.Parse(layoutDateTime, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutDate, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutTime, raw); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}

	return time.Time{}, errBadQueryArgument(name, raw, fmt.Errorf("expected %q, %q or %q", layoutDateTime, layoutDate, layoutTime))
}

// restrictedArg maps yes/no to a tri-state filter; any other value means no
// restriction filter at all.
func restrictedArg(q url.Values) *bool {
	switch q.Get(argRestricted) {
	case valueYes:
		v := true
		return &v
	case valueNo:
		v := false
		return &v
	default:
		return nil
	}
}

// ipArg maps an absent argument to nil and the "unknown" category back to the
// empty address it stands for.
func ipArg(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	if v == valueUnknown {
		v = ""
	}
	return &v
}
