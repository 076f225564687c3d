package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"reqlog-analytics/internal/aggregators"
	"reqlog-analytics/internal/counters"
	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/selectors"
	"reqlog-analytics/internal/shared/loggers"
	"reqlog-analytics/internal/shared/metrics"
	"reqlog-analytics/internal/shared/svcerrors"
	"reqlog-analytics/internal/shared/ulid"
	"reqlog-analytics/internal/stores"
)

//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	// Summary runs coarse query, selection and the seven-dimension rollup.
	Summary(ctx context.Context, session Session, req *ReportRequest) (*SummaryReport, *svcerrors.ServiceError)
	// Requests runs coarse query and selection in collect mode, returning
	// the trimmed projections.
	Requests(ctx context.Context, session Session, req *ReportRequest) (*RequestsReport, *svcerrors.ServiceError)
	// Chart streams the selection through a pre-seeded usage counter and
	// returns one dense bucket dimension.
	Chart(ctx context.Context, session Session, req *ReportRequest) (*ChartReport, *svcerrors.ServiceError)
}

type reportService struct {
	store      stores.RequestStore
	selector   selectors.RequestSelector
	aggregator aggregators.SummaryAggregator
}

func NewReportService(store stores.RequestStore, selector selectors.RequestSelector, aggregator aggregators.SummaryAggregator) ReportService {
	return &reportService{store: store, selector: selector, aggregator: aggregator}
}

// NewSession creates the explicit per-invocation session value.
func NewSession() Session {
	return Session{ID: ulid.NewULID(), CreatedAt: time.Now().UTC()}
}

func (s *reportService) Summary(ctx context.Context, session Session, req *ReportRequest) (*SummaryReport, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started summary report for session %s, range %s to %s", session.ID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	selection, svcErr := s.selectRequests(ctx, req)
	if svcErr != nil {
		metricReportGeneratedTotal.WithLabelValues(string(KindSummary), svcErr.Code).Inc()
		return nil, svcErr
	}
	metricReportRequestsSelected.WithLabelValues(string(KindSummary)).Observe(float64(len(selection)))

	rollups, err := s.aggregator.Aggregate(ctx, selection, req.Start, req.End)
	if err != nil {
		svcErr = errInternalAggregationFailed(err)
		metricReportGeneratedTotal.WithLabelValues(string(KindSummary), svcErr.Code).Inc()
		return nil, svcErr
	}

	totalSize := rollups.TotalSizeBytes()
	report := &SummaryReport{
		Session:           session,
		GeneratedAt:       time.Now().UTC(),
		Start:             req.Start,
		End:               req.End,
		RequestCount:      len(selection),
		ErrorRequestCount: len(rollups.ErrorRequestIDs),
		ErrorCount:        rollups.TotalErrorCount(),
		UserCount:         len(rollups.ByUser),
		StationCount:      len(rollups.ByStation),
		TotalLineCount:    rollups.TotalLineCount,
		TotalSizeBytes:    totalSize,
		TotalSizeDisplay:  ByteSize(totalSize),
		Rollups:           rollups,
	}

	metricReportGeneratedTotal.WithLabelValues(string(KindSummary), metrics.ValueNoError).Inc()
	return report, nil
}

func (s *reportService) Requests(ctx context.Context, session Session, req *ReportRequest) (*RequestsReport, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started requests report for session %s", session.ID)

	selection, svcErr := s.selectRequests(ctx, req)
	if svcErr != nil {
		metricReportGeneratedTotal.WithLabelValues(string(KindRequests), svcErr.Code).Inc()
		return nil, svcErr
	}
	metricReportRequestsSelected.WithLabelValues(string(KindRequests)).Observe(float64(len(selection)))

	metricReportGeneratedTotal.WithLabelValues(string(KindRequests), metrics.ValueNoError).Inc()
	return &RequestsReport{
		Session:     session,
		GeneratedAt: time.Now().UTC(),
		OnlyErrors:  req.OnlyErrors,
		Requests:    selection,
	}, nil
}

func (s *reportService) Chart(ctx context.Context, session Session, req *ReportRequest) (*ChartReport, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started chart report for session %s, dimension %s", session.ID, req.Plotting)

	counter, err := counters.NewUsageCounter(req.Start, req.End)
	if err != nil {
		svcErr := errInvalidRange(err)
		metricReportGeneratedTotal.WithLabelValues(string(KindChart), svcErr.Code).Inc()
		return nil, svcErr
	}

	records, svcErr := s.queryStore(ctx, req)
	if svcErr != nil {
		metricReportGeneratedTotal.WithLabelValues(string(KindChart), svcErr.Code).Inc()
		return nil, svcErr
	}

	// Streaming mode: large result sets never materialize.
	accepted := 0
	err = s.selector.Stream(ctx, records, fineCriteria(req), func(projection *models.RequestRecord) error {
		counter.Accumulate(projection)
		accepted++
		return nil
	})
	if err != nil {
		svcErr = errInternalSelectionFailed(err)
		metricReportGeneratedTotal.WithLabelValues(string(KindChart), svcErr.Code).Inc()
		return nil, svcErr
	}
	metricReportRequestsSelected.WithLabelValues(string(KindChart)).Observe(float64(accepted))

	dimension := req.Plotting
	if dimension == "" {
		dimension = DimensionDaily
	}
	buckets, svcErr := bucketSeries(counter, dimension)
	if svcErr != nil {
		metricReportGeneratedTotal.WithLabelValues(string(KindChart), svcErr.Code).Inc()
		return nil, svcErr
	}

	var total models.BucketMetrics
	for _, bucket := range buckets {
		total = total.Add(bucket.Metrics)
	}

	parameter := req.Parameter
	if parameter == "" {
		parameter = ParameterRequests
	}

	metricReportGeneratedTotal.WithLabelValues(string(KindChart), metrics.ValueNoError).Inc()
	return &ChartReport{
		Session:     session,
		GeneratedAt: time.Now().UTC(),
		Start:       req.Start,
		End:         req.End,
		Dimension:   dimension,
		Parameter:   parameter,
		Buckets:     buckets,
		Total:       total,
	}, nil
}

// selectRequests runs the coarse store query and the fine selection pass in
// collect mode.
func (s *reportService) selectRequests(ctx context.Context, req *ReportRequest) ([]*models.RequestRecord, *svcerrors.ServiceError) {
	records, svcErr := s.queryStore(ctx, req)
	if svcErr != nil {
		return nil, svcErr
	}

	selection, err := s.selector.Collect(ctx, records, fineCriteria(req))
	if err != nil {
		return nil, errInternalSelectionFailed(err)
	}
	return selection, nil
}

func (s *reportService) queryStore(ctx context.Context, req *ReportRequest) ([]*models.RequestRecord, *svcerrors.ServiceError) {
	records, err := s.store.Query(ctx, coarseQuery(req))
	if err != nil {
		return nil, errInternalRequestStoreFailed(err)
	}
	return records, nil
}

// coarseQuery is the first refinement pass: the caller's * and ? wildcards
// become SQL-LIKE % patterns for the store.
func coarseQuery(req *ReportRequest) stores.RequestQuery {
	q := stores.RequestQuery{
		RequestID: req.RequestID,
		Start:     req.Start,
		End:       req.End,
		UserID:    likePattern(req.UserID),
		Type:      likePattern(req.Type),
		NetClass:  req.NetClass,
	}
	if q.NetClass == "" || q.NetClass == "any" {
		q.NetClass = stores.NetClassAny
	}

	q.Network, q.Station, q.Location, q.Channel = "%", "%", "%", "%"
	if req.StreamID != "" {
		parts := strings.Split(likePattern(req.StreamID), ".")
		if len(parts) == 4 {
			q.Network, q.Station, q.Location, q.Channel = parts[0], parts[1], parts[2], parts[3]
		}
	}
	return q
}

func likePattern(raw string) string {
	if raw == "" || raw == "any" {
		return "%"
	}
	return strings.NewReplacer("*", "%", "?", "%").Replace(raw)
}

// fineCriteria is the second refinement pass: wildcards are stripped so the
// selector matches the remaining segments exactly.
func fineCriteria(req *ReportRequest) selectors.Criteria {
	return selectors.Criteria{
		Restricted: req.Restricted,
		OnlyErrors: req.OnlyErrors,
		WantLines:  req.WantLines,
		VolumeID:   req.VolumeID,
		Message:    req.Message,
		UserIP:     req.UserIP,
		ClientIP:   req.ClientIP,
		Stream:     selectors.ParseStreamPattern(req.StreamID),
	}
}

// bucketSeries flattens one counter dimension into a dense series sorted by
// the opaque bucket key. Weekday keys sort by their ordinal prefix and are
// displayed without it.
func bucketSeries(counter *counters.UsageCounter, dimension BucketDimension) ([]ChartBucket, *svcerrors.ServiceError) {
	var buckets map[string]models.BucketMetrics
	switch dimension {
	case DimensionHourly:
		buckets = counter.Hourly
	case DimensionDaily:
		buckets = counter.Daily
	case DimensionMonthly:
		buckets = counter.Monthly
	case DimensionWeekdaily:
		buckets = counter.Weekday
	default:
		return nil, errValidationFailed("unsupported chart dimension: "+string(dimension), nil)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]ChartBucket, 0, len(keys))
	for _, key := range keys {
		series = append(series, ChartBucket{
			Key:     key,
			Label:   models.WeekdayDisplay(key),
			Metrics: buckets[key],
		})
	}
	return series, nil
}
