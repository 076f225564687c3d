package selectors

import (
	"context"

	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/shared/loggers"
	"reqlog-analytics/internal/stores"
)

// averageTimeWindowLimit is the largest average the log format's fixed-width
// field can hold; anything above it becomes the -1 sentinel.
const averageTimeWindowLimit = int64(1) << 32

// VisitFunc receives one accepted request projection. Returning an error
// aborts the selection.
type VisitFunc func(projection *models.RequestRecord) error

// RequestSelector applies the fine-grained filter predicate to a candidate
// sequence. Accepted requests are emitted as projections holding only the
// matched sub-lines and, when the request-line pass ran, a summary derived
// from the matched lines — never the full original sub-line set.
//
//go:generate mockgen -source=request_selector.go -destination=./mocks/request_selector_mock.go -package=mocks
type RequestSelector interface {
	// Stream visits every accepted projection without materializing the
	// result set. The filter predicate always runs, even with empty criteria.
	Stream(ctx context.Context, records []*models.RequestRecord, criteria Criteria, visit VisitFunc) error
	// Collect materializes the accepted projections. With no narrowing
	// criteria the candidates are returned as-is (nothing to trim).
	Collect(ctx context.Context, records []*models.RequestRecord, criteria Criteria) ([]*models.RequestRecord, error)
}

type requestSelector struct {
	store stores.RequestStore
}

func NewRequestSelector(store stores.RequestStore) RequestSelector {
	return &requestSelector{store: store}
}

func (s *requestSelector) Collect(ctx context.Context, records []*models.RequestRecord, criteria Criteria) ([]*models.RequestRecord, error) {
	if !criteria.Narrowing() {
		return records, nil
	}

	selection := make([]*models.RequestRecord, 0, len(records))
	err := s.Stream(ctx, records, criteria, func(projection *models.RequestRecord) error {
		selection = append(selection, projection)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return selection, nil
}

func (s *requestSelector) Stream(ctx context.Context, records []*models.RequestRecord, criteria Criteria, visit VisitFunc) error {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("selecting from %d candidate requests", len(records))

	accepted := 0
	for _, record := range records {
		projection, err := s.selectOne(ctx, record, criteria)
		if err != nil {
			return err
		}
		if projection == nil {
			continue
		}
		accepted++
		if err := visit(projection); err != nil {
			return err
		}
	}

	logger.Debug().Msgf("selection accepted %d of %d requests", accepted, len(records))
	return nil
}

// selectOne applies the filter predicate to one candidate. It returns the
// trimmed projection, or nil when the request is rejected. Only store-load
// failures are errors; a non-match is a normal outcome.
func (s *requestSelector) selectOne(ctx context.Context, record *models.RequestRecord, criteria Criteria) (*models.RequestRecord, error) {
	reqErrors := record.ErrorLineCount()

	matchedUserIP := false
	if criteria.UserIP != nil {
		if *criteria.UserIP != record.UserIP {
			return nil, nil
		}
		matchedUserIP = true
	}
	matchedClientIP := false
	if criteria.ClientIP != nil {
		if *criteria.ClientIP != record.ClientIP {
			return nil, nil
		}
		matchedClientIP = true
	}

	projection := record.CloneHeader()

	matchedVolume, err := s.projectStatusLines(ctx, record, criteria, projection)
	if err != nil {
		return nil, err
	}
	if criteria.VolumeID != "" && len(record.StatusLines) == 0 {
		return nil, nil
	}

	matchedLine := false
	if criteria.wantRequestLines() {
		matchedLine, err = s.projectRequestLines(ctx, record, criteria, projection)
		if err != nil {
			return nil, err
		}
	}

	if !accepted(criteria, record, reqErrors, matchedUserIP, matchedClientIP, matchedVolume, matchedLine) {
		return nil, nil
	}
	return projection, nil
}

// projectStatusLines lazily loads the record's status lines and copies the
// ones passing the volume/message/onlyErrors skips into the projection.
func (s *requestSelector) projectStatusLines(ctx context.Context, record *models.RequestRecord, criteria Criteria, projection *models.RequestRecord) (bool, error) {
	if err := s.store.LoadStatusLines(ctx, record); err != nil {
		return false, err
	}

	matched := false
	for _, statusLine := range record.StatusLines {
		if criteria.VolumeID != "" && criteria.VolumeID != statusLine.VolumeID {
			continue
		}
		if criteria.Message != "" && criteria.Message != statusLine.Message {
			continue
		}
		if criteria.OnlyErrors && statusLine.Status == models.LineStatusOK {
			continue
		}
		projection.StatusLines = append(projection.StatusLines, statusLine)
		matched = true
	}
	projection.StatusLinesLoaded = true
	return matched, nil
}

// projectRequestLines lazily loads the record's request lines, copies the
// matching ones and attaches a summary derived from them: okLineCount =
// lines - errors, totalLineCount = lines, averageTimeWindowSeconds = mean of
// the clamped-nonnegative windows (0 with no lines, -1 when the mean would
// not fit the fixed-width field).
func (s *requestSelector) projectRequestLines(ctx context.Context, record *models.RequestRecord, criteria Criteria, projection *models.RequestRecord) (bool, error) {
	if err := s.store.LoadRequestLines(ctx, record); err != nil {
		return false, err
	}

	matched := false
	var lineCount, errorCount, windowSeconds int64
	for i := range record.RequestLines {
		line := &record.RequestLines[i]
		if criteria.VolumeID != "" && criteria.VolumeID != line.Status.VolumeID {
			continue
		}
		if criteria.Message != "" && criteria.Message != line.Status.Message {
			continue
		}
		if criteria.OnlyErrors && line.Status.Status == models.LineStatusOK {
			continue
		}
		if criteria.Stream.Network != "" && criteria.Stream.Network != line.Stream.Network {
			continue
		}
		if criteria.Stream.Station != "" && criteria.Stream.Station != line.Stream.Station {
			continue
		}
		if criteria.Stream.Location != "" && criteria.Stream.Location != line.Stream.Location {
			continue
		}
		if criteria.Stream.Channel != "" && criteria.Stream.Channel != line.Stream.Channel {
			continue
		}
		if criteria.Restricted != nil && *criteria.Restricted != line.Restricted {
			continue
		}

		projection.RequestLines = append(projection.RequestLines, *line)
		matched = true
		lineCount++
		if line.Status.Status != models.LineStatusOK {
			errorCount++
		}
		windowSeconds += int64(line.TimeWindow().Seconds())
	}

	averageTimeWindow := int64(0)
	if lineCount > 0 {
		averageTimeWindow = windowSeconds / lineCount
	}
	if averageTimeWindow > averageTimeWindowLimit {
		averageTimeWindow = -1
	}
	projection.Summary = &models.RequestSummary{
		TotalLineCount:           lineCount,
		OkLineCount:              lineCount - errorCount,
		AverageTimeWindowSeconds: averageTimeWindow,
	}
	projection.RequestLinesLoaded = true
	return matched, nil
}

// accepted is the final inclusion decision, an ordered guard list kept
// literally equivalent to the historical behavior: broad criteria (IP
// equality, error status) only count when no finer-grained narrowing was
// requested; finer-grained criteria, when supplied, take over as the
// acceptance test.
func accepted(criteria Criteria, record *models.RequestRecord, reqErrors int64, matchedUserIP, matchedClientIP, matchedVolume, matchedLine bool) bool {
	// Guard A: errors-only view includes requests that never reached END.
	if criteria.OnlyErrors && record.Status != models.RequestStatusEnd {
		return true
	}
	// Guard B: errors-only with no line/volume narrowing falls back to the
	// request summary's error count.
	if !criteria.WantLines && criteria.VolumeID == "" && criteria.OnlyErrors && reqErrors > 0 {
		return true
	}
	// Guard C: a bare IP match counts only when no finer criterion was
	// supplied at all.
	if criteria.Message == "" && !criteria.WantLines && !criteria.OnlyErrors && criteria.VolumeID == "" &&
		(matchedUserIP || matchedClientIP) {
		return true
	}
	return matchedVolume || matchedLine
}
