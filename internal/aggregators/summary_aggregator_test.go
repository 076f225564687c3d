package aggregators

import (
	"context"
	"errors"
	"testing"
	"time"

	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func noopLoadingStore(ctrl *gomock.Controller) *mocks.MockRequestStore {
	store := mocks.NewMockRequestStore(ctrl)
	store.EXPECT().LoadStatusLines(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().LoadRequestLines(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return store
}

func TestAggregate_RollupDimensions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := NewSummaryAggregator(noopLoadingStore(ctrl))

	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	lineStart := time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC)

	records := []*models.RequestRecord{
		{
			ID:        "1",
			Type:      models.TypeWaveform,
			UserID:    "gfz",
			UserIP:    "10.0.0.1",
			ClientIP:  "10.0.0.2",
			CreatedAt: time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC),
			Status:    models.RequestStatusEnd,
			Summary:   &models.RequestSummary{TotalLineCount: 3, OkLineCount: 3},
			StatusLines: []models.StatusLine{
				{VolumeID: "sdsreq", Status: models.LineStatusOK, SizeBytes: 3000, Message: "OK"},
			},
			StatusLinesLoaded: true,
			RequestLines: []models.RequestLine{
				{
					Stream: models.StreamID{Network: "GE", Station: "APE", Channel: "BHZ"},
					Start:  lineStart, End: lineStart.Add(100 * time.Second),
					Status: models.LineStatus{Status: models.LineStatusOK, VolumeID: "sdsreq", SizeBytes: 1000, Message: "OK"},
				},
				{
					Stream: models.StreamID{Network: "GE", Station: "APE", Channel: "BHN"},
					Start:  lineStart, End: lineStart.Add(100 * time.Second),
					Status: models.LineStatus{Status: models.LineStatusNoData, VolumeID: "sdsreq", Message: "no data"},
				},
				{
					Stream: models.StreamID{Network: "XX", Station: "TMP1", Channel: "BHZ"},
					Start:  lineStart, End: lineStart.Add(50 * time.Second),
					Status: models.LineStatus{Status: models.LineStatusOK, VolumeID: "sdsreq", SizeBytes: 2000, Message: "OK"},
				},
			},
			RequestLinesLoaded: true,
		},
		{
			ID:        "2",
			Type:      models.TypeInventory,
			UserID:    "gfz",
			CreatedAt: time.Date(2021, 6, 7, 8, 0, 0, 0, time.UTC),
			Status:    models.RequestStatusEnd,
			Summary:   &models.RequestSummary{TotalLineCount: 2, OkLineCount: 0},
			StatusLines: []models.StatusLine{
				{VolumeID: "inventory", Status: models.LineStatusError, SizeBytes: 500, Message: "backend down"},
			},
			StatusLinesLoaded: true,
		},
	}

	rollups, err := aggregator.Aggregate(context.Background(), records, start, end)
	require.NoError(t, err)

	// User dimension: request and line counts from summaries, bytes from
	// delivered status lines only.
	user := rollups.ByUser["gfz"]
	assert.Equal(t, int64(2), user.RequestCount)
	assert.Equal(t, int64(5), user.LineCount)
	assert.Equal(t, int64(2), user.ErrorCount)
	assert.Equal(t, int64(3000), user.SizeBytes)

	// Volume dimension: the ERROR volume keeps its count but drops its bytes.
	assert.Equal(t, models.VolumeMetrics{Count: 1, SizeBytes: 3000}, rollups.ByVolume["sdsreq"])
	assert.Equal(t, models.VolumeMetrics{Count: 1, ErrorCount: 1, SizeBytes: 0}, rollups.ByVolume["inventory"])

	// Station dimension keyed NET.STA, with summed line durations.
	ape := rollups.ByStation["GE.APE"]
	assert.Equal(t, int64(2), ape.LineCount)
	assert.Equal(t, int64(1), ape.NodataCount)
	assert.Equal(t, int64(1000), ape.SizeBytes)
	assert.Equal(t, int64(200), ape.DurationSeconds)

	// Temporary network codes are keyed with the deployment year.
	assert.Contains(t, rollups.ByNetwork, "XX/2021")
	assert.Equal(t, int64(1), rollups.ByNetwork["XX/2021"].RequestCount)
	ge := rollups.ByNetwork["GE"]
	assert.Equal(t, int64(1), ge.RequestCount)
	assert.Equal(t, int64(2), ge.LineCount)
	assert.Equal(t, int64(1), ge.NodataCount)

	// Type dimension.
	assert.Equal(t, models.TypeMetrics{RequestCount: 1, LineCount: 3}, rollups.ByType["WAVEFORM"])
	assert.Equal(t, models.TypeMetrics{RequestCount: 1, LineCount: 2, ErrorCount: 2}, rollups.ByType["INVENTORY"])

	// Message dimension counts status and request lines alike.
	assert.Equal(t, int64(3), rollups.ByMessage["OK"])
	assert.Equal(t, int64(1), rollups.ByMessage["no data"])
	assert.Equal(t, int64(1), rollups.ByMessage["backend down"])

	// IP dimension: a missing address lands in the unknown category.
	assert.Equal(t, int64(1), rollups.ByUserIP["10.0.0.1"].RequestCount)
	assert.Equal(t, int64(1), rollups.ByUserIP[IPUnknown].RequestCount)
	assert.Equal(t, int64(1), rollups.ByClientIP["10.0.0.2"].RequestCount)

	// Globals.
	assert.Equal(t, int64(5), rollups.TotalLineCount)
	assert.Equal(t, map[string]int64{"2": 2}, rollups.ErrorRequestIDs)
	assert.Equal(t, int64(2), rollups.TotalErrorCount())
	assert.Equal(t, int64(3000), rollups.TotalSizeBytes())

	// Observed span narrows to the actual creation times.
	assert.Equal(t, records[0].CreatedAt, rollups.FirstCreated)
	assert.Equal(t, records[1].CreatedAt, rollups.LastCreated)
}

func TestAggregate_ErrorVolumeZeroesLineBytes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := NewSummaryAggregator(noopLoadingStore(ctrl))

	lineStart := time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC)
	record := &models.RequestRecord{
		ID:        "1",
		Type:      models.TypeWaveform,
		UserID:    "gfz",
		CreatedAt: lineStart,
		Summary:   &models.RequestSummary{TotalLineCount: 1, OkLineCount: 0},
		StatusLines: []models.StatusLine{
			{VolumeID: "sdsreq", Status: models.LineStatusError, SizeBytes: 4096, Message: "broken"},
		},
		StatusLinesLoaded: true,
		RequestLines: []models.RequestLine{
			{
				Stream: models.StreamID{Network: "GE", Station: "APE", Channel: "BHZ"},
				Start:  lineStart, End: lineStart.Add(10 * time.Second),
				// The line claims OK with a size, but its volume failed.
				Status: models.LineStatus{Status: models.LineStatusOK, VolumeID: "sdsreq", SizeBytes: 4096},
			},
		},
		RequestLinesLoaded: true,
	}

	rollups, err := aggregator.Aggregate(context.Background(), []*models.RequestRecord{record}, lineStart, lineStart.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(0), rollups.ByVolume["sdsreq"].SizeBytes)
	assert.Equal(t, int64(0), rollups.ByStation["GE.APE"].SizeBytes)
	assert.Equal(t, int64(0), rollups.ByNetwork["GE"].SizeBytes)
}

func TestAggregate_WaveformLineLoading(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRequestStore(ctrl)
	store.EXPECT().LoadStatusLines(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	lineStart := time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC)
	waveform := &models.RequestRecord{
		ID: "1", Type: models.TypeWaveform, UserID: "gfz", CreatedAt: lineStart,
		Summary: &models.RequestSummary{TotalLineCount: 1, OkLineCount: 1},
	}
	inventory := &models.RequestRecord{
		ID: "2", Type: models.TypeInventory, UserID: "gfz", CreatedAt: lineStart,
		Summary: &models.RequestSummary{TotalLineCount: 1, OkLineCount: 1},
	}

	// Only the WAVEFORM record gets its request lines loaded.
	store.EXPECT().LoadRequestLines(gomock.Any(), waveform).DoAndReturn(
		func(ctx context.Context, record *models.RequestRecord) error {
			record.RequestLines = []models.RequestLine{
				{
					Stream: models.StreamID{Network: "GE", Station: "APE", Channel: "BHZ"},
					Start:  lineStart, End: lineStart.Add(time.Minute),
					Status: models.LineStatus{Status: models.LineStatusOK, VolumeID: "sdsreq", SizeBytes: 10},
				},
			}
			record.RequestLinesLoaded = true
			return nil
		})

	aggregator := NewSummaryAggregator(store, WithWaveformLineLoading())

	rollups, err := aggregator.Aggregate(context.Background(), []*models.RequestRecord{waveform, inventory}, lineStart, lineStart.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Contains(t, rollups.ByStation, "GE.APE")
}

func TestAggregate_StoreFailureAborts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRequestStore(ctrl)
	loadErr := errors.New("disk gone")
	store.EXPECT().LoadStatusLines(gomock.Any(), gomock.Any()).Return(loadErr)

	aggregator := NewSummaryAggregator(store)

	start := time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC)
	record := &models.RequestRecord{ID: "1", UserID: "gfz", CreatedAt: start, Summary: &models.RequestSummary{}}

	_, err := aggregator.Aggregate(context.Background(), []*models.RequestRecord{record}, start, start.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, loadErr)
}

func TestAggregate_EmptyInputKeepsSeededSpan(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := NewSummaryAggregator(noopLoadingStore(ctrl))

	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)

	rollups, err := aggregator.Aggregate(context.Background(), nil, start, end)
	require.NoError(t, err)

	assert.Empty(t, rollups.ByUser)
	assert.Equal(t, end, rollups.FirstCreated)
	assert.Equal(t, start, rollups.LastCreated)
}
