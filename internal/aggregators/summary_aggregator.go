package aggregators

import (
	"context"
	"strconv"
	"strings"
	"time"

	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/shared/loggers"
	"reqlog-analytics/internal/stores"
)

func lineLoadingLabel(enabled bool) string {
	if enabled {
		return "waveform"
	}
	return "none"
}

// IPUnknown is the rollup category for requests without a recorded IP.
const IPUnknown = "unknown"

// SummaryAggregator rolls an accepted-request stream up into the seven
// report dimensions (user, network, type, volume, station, message, IP) plus
// global totals, in one pass. Status lines are lazily loaded per record;
// request lines only when the aggregator was built with waveform line
// loading and the record is a WAVEFORM request (records arriving as selector
// projections already carry their matched lines).
//
//go:generate mockgen -source=summary_aggregator.go -destination=./mocks/summary_aggregator_mock.go -package=mocks
type SummaryAggregator interface {
	// Aggregate builds the rollups over the accepted requests. start and end
	// seed the observed-span tracking; the resulting FirstCreated and
	// LastCreated narrow to the actual creation-time span of the input.
	Aggregate(ctx context.Context, records []*models.RequestRecord, start, end time.Time) (*models.UsageRollups, error)
}

type Option func(*summaryAggregator)

// WithWaveformLineLoading makes the aggregator load request lines of
// WAVEFORM requests that arrive without them, so station and network
// rollups cover unfiltered exports.
func WithWaveformLineLoading() Option {
	return func(a *summaryAggregator) { a.loadWaveformLines = true }
}

type summaryAggregator struct {
	store             stores.RequestStore
	loadWaveformLines bool
}

func NewSummaryAggregator(store stores.RequestStore, opts ...Option) SummaryAggregator {
	aggregator := &summaryAggregator{store: store}
	for _, opt := range opts {
		opt(aggregator)
	}
	return aggregator
}

func (a *summaryAggregator) Aggregate(ctx context.Context, records []*models.RequestRecord, start, end time.Time) (*models.UsageRollups, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("aggregating %d accepted requests", len(records))

	rollups := models.NewEmptyUsageRollups(start, end)
	for _, record := range records {
		if err := a.aggregateOne(ctx, record, rollups); err != nil {
			return nil, err
		}
	}

	metricRecordsAggregated.WithLabelValues(lineLoadingLabel(a.loadWaveformLines)).Observe(float64(len(records)))
	return rollups, nil
}

func (a *summaryAggregator) aggregateOne(ctx context.Context, record *models.RequestRecord, rollups *models.UsageRollups) error {
	user := record.UserID

	// volumeError carries each volume's delivery outcome from the
	// status-line pass into the request-line byte accounting.
	volumeError, err := a.aggregateStatusLines(ctx, record, rollups, user)
	if err != nil {
		return err
	}

	if err := a.aggregateRequestLines(ctx, record, rollups, volumeError); err != nil {
		return err
	}

	lineCount := record.TotalLineCount()
	errorCount := record.ErrorLineCount()

	userMetrics := rollups.ByUser[user]
	userMetrics.RequestCount++
	userMetrics.LineCount += lineCount
	userMetrics.ErrorCount += errorCount
	rollups.ByUser[user] = userMetrics

	addIPMetrics(rollups.ByUserIP, record.UserIP, lineCount, errorCount)
	addIPMetrics(rollups.ByClientIP, record.ClientIP, lineCount, errorCount)

	typeMetrics := rollups.ByType[string(record.Type)]
	typeMetrics.RequestCount++
	typeMetrics.LineCount += lineCount
	typeMetrics.ErrorCount += errorCount
	rollups.ByType[string(record.Type)] = typeMetrics

	if errorCount > 0 {
		rollups.ErrorRequestIDs[record.ID] += errorCount
	}
	rollups.TotalLineCount += lineCount

	if record.CreatedAt.Before(rollups.FirstCreated) {
		rollups.FirstCreated = record.CreatedAt
	}
	if record.CreatedAt.After(rollups.LastCreated) {
		rollups.LastCreated = record.CreatedAt
	}
	return nil
}

// aggregateStatusLines feeds the volume, message and per-user byte rollups.
// An ERROR volume contributes zero bytes even if a size was recorded, and is
// flagged so the request-line pass zeroes its bytes too.
func (a *summaryAggregator) aggregateStatusLines(ctx context.Context, record *models.RequestRecord, rollups *models.UsageRollups, user string) (map[string]bool, error) {
	if err := a.store.LoadStatusLines(ctx, record); err != nil {
		return nil, err
	}

	volumeError := make(map[string]bool, len(record.StatusLines))
	for _, statusLine := range record.StatusLines {
		var errInc int64
		if statusLine.Status != models.LineStatusOK {
			errInc = 1
		}

		var size int64
		if statusLine.Status == models.LineStatusError {
			volumeError[statusLine.VolumeID] = true
		} else {
			volumeError[statusLine.VolumeID] = false
			size = statusLine.SizeBytes
		}

		volumeMetrics := rollups.ByVolume[statusLine.VolumeID]
		volumeMetrics.Count++
		volumeMetrics.ErrorCount += errInc
		volumeMetrics.SizeBytes += size
		rollups.ByVolume[statusLine.VolumeID] = volumeMetrics

		// Only bytes accumulate here; the user's request and line counts
		// come from the request summary afterwards.
		userMetrics := rollups.ByUser[user]
		userMetrics.SizeBytes += size
		rollups.ByUser[user] = userMetrics

		rollups.ByMessage[statusLine.Message]++
	}
	return volumeError, nil
}

// aggregateRequestLines feeds the station, network and message rollups.
// Byte accounting reuses the volume's error flag from the status-line pass;
// a volume never seen there falls back to the line's own recorded size.
func (a *summaryAggregator) aggregateRequestLines(ctx context.Context, record *models.RequestRecord, rollups *models.UsageRollups, volumeError map[string]bool) error {
	if a.loadWaveformLines && record.Type == models.TypeWaveform {
		if err := a.store.LoadRequestLines(ctx, record); err != nil {
			return err
		}
	}

	netCounts := make(map[string]models.NetworkMetrics)
	for i := range record.RequestLines {
		line := &record.RequestLines[i]

		windowSeconds := int64(line.TimeWindow().Seconds())

		var errInc, nodataInc, size int64
		switch line.Status.Status {
		case models.LineStatusError:
			errInc = 1
		case models.LineStatusNoData:
			nodataInc = 1
		default:
			if flagged, seen := volumeError[line.Status.VolumeID]; !seen || !flagged {
				size = line.Status.SizeBytes
			}
		}

		stationKey := line.Stream.StationKey()
		stationMetrics := rollups.ByStation[stationKey]
		stationMetrics.LineCount++
		stationMetrics.NodataCount += nodataInc
		stationMetrics.ErrorCount += errInc
		stationMetrics.SizeBytes += size
		stationMetrics.DurationSeconds += windowSeconds
		rollups.ByStation[stationKey] = stationMetrics

		rollups.ByMessage[line.Status.Message]++

		netKey := networkKey(line)
		netMetrics := netCounts[netKey]
		netMetrics.LineCount++
		netMetrics.NodataCount += nodataInc
		netMetrics.ErrorCount += errInc
		netMetrics.SizeBytes += size
		netCounts[netKey] = netMetrics
	}

	// One request count per network the request touched.
	for netKey, partial := range netCounts {
		netMetrics := rollups.ByNetwork[netKey]
		netMetrics.RequestCount++
		netMetrics.LineCount += partial.LineCount
		netMetrics.NodataCount += partial.NodataCount
		netMetrics.ErrorCount += partial.ErrorCount
		netMetrics.SizeBytes += partial.SizeBytes
		rollups.ByNetwork[netKey] = netMetrics
	}
	return nil
}

// networkKey suffixes temporary/experimental network codes (X, Y, Z prefix)
// with the line's start year, so reused codes from different deployments do
// not collapse into one rollup key.
func networkKey(line *models.RequestLine) string {
	netKey := line.Stream.Network
	if netKey != "" && strings.ContainsRune("XYZ", rune(netKey[0])) {
		netKey += "/" + strconv.Itoa(line.Start.UTC().Year())
	}
	return netKey
}

func addIPMetrics(rollup map[string]models.IPMetrics, ip string, lineCount, errorCount int64) {
	if ip == "" {
		ip = IPUnknown
	}
	metrics := rollup[ip]
	metrics.RequestCount++
	metrics.LineCount += lineCount
	metrics.ErrorCount += errorCount
	rollup[ip] = metrics
}
