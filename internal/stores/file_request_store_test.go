package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/shared/filestorages"
	"reqlog-analytics/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func jsonBody(t *testing.T, record *models.RequestRecord) io.ReadCloser {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return io.NopCloser(bytes.NewReader(data))
}

func storedRecord(id string, createdAt time.Time) *models.RequestRecord {
	return &models.RequestRecord{
		ID:        id,
		Type:      models.TypeWaveform,
		UserID:    "gfz",
		CreatedAt: createdAt,
		Status:    models.RequestStatusEnd,
		Summary:   &models.RequestSummary{TotalLineCount: 1, OkLineCount: 1},
		StatusLines: []models.StatusLine{
			{VolumeID: "sdsreq", Status: models.LineStatusOK, SizeBytes: 100},
		},
		RequestLines: []models.RequestLine{
			{
				Stream: models.StreamID{Network: "GE", Station: "APE", Channel: "BHZ"},
				Start:  createdAt, End: createdAt.Add(time.Minute),
				Status: models.LineStatus{Status: models.LineStatusOK, VolumeID: "sdsreq", SizeBytes: 100},
			},
		},
	}
}

func TestFileRequestStore_Put(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	record := storedRecord("42", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC))

	expectedKey := "requests/2021-06-06_42.json"
	mockFileStorage.EXPECT().
		Put(ctx, expectedKey, gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		Return(&filestorages.PutResult{FileKey: expectedKey}, nil)

	err := store.Put(ctx, record)
	assert.NoError(t, err)
}

func TestFileRequestStore_Put_AlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, filestorages.ErrFileAlreadyExists)

	err := store.Put(ctx, storedRecord("42", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrRequestAlreadyExists)
}

func TestFileRequestStore_Query_RangeAndFilters(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	inRange := storedRecord("2", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC))
	otherUser := storedRecord("3", time.Date(2021, 6, 6, 13, 0, 0, 0, time.UTC))
	otherUser.UserID = "resif"

	mockFileStorage.EXPECT().List(ctx, "requests").Return([]string{
		"requests/2021-06-01_1.json",
		"requests/2021-06-06_2.json",
		"requests/2021-06-06_3.json",
	}, nil)
	// The out-of-range key "2021-06-01_1" is pruned without a read.
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_2.json").Return(jsonBody(t, inRange), nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_3.json").Return(jsonBody(t, otherUser), nil)

	records, err := store.Query(ctx, RequestQuery{
		Start:  time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC),
		UserID: "gf%",
	})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0].ID)

	// Query returns bare headers.
	assert.Empty(t, records[0].StatusLines)
	assert.False(t, records[0].StatusLinesLoaded)
	assert.Empty(t, records[0].RequestLines)
}

func TestFileRequestStore_Query_ByIDBypassesRange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	record := storedRecord("7", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	mockFileStorage.EXPECT().List(ctx, "requests").Return([]string{
		"requests/2020-01-01_7.json",
		"requests/2021-06-06_8.json",
	}, nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2020-01-01_7.json").Return(jsonBody(t, record), nil)

	records, err := store.Query(ctx, RequestQuery{
		RequestID: "7",
		Start:     time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].ID)
}

func TestFileRequestStore_Query_DropsUnfinishedRecords(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	unfinished := storedRecord("2", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC))
	unfinished.Summary = nil

	mockFileStorage.EXPECT().List(ctx, "requests").Return([]string{"requests/2021-06-06_2.json"}, nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_2.json").Return(jsonBody(t, unfinished), nil)

	records, err := store.Query(ctx, RequestQuery{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileRequestStore_Query_StreamFilter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	day := time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC)
	geRecord := storedRecord("2", day)
	tmpRecord := storedRecord("3", day)
	tmpRecord.RequestLines[0].Stream = models.StreamID{Network: "XX", Station: "TMP1", Channel: "BHZ"}

	mockFileStorage.EXPECT().List(ctx, "requests").Return([]string{
		"requests/2021-06-06_2.json",
		"requests/2021-06-06_3.json",
	}, nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_2.json").Return(jsonBody(t, geRecord), nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_3.json").Return(jsonBody(t, tmpRecord), nil)

	records, err := store.Query(ctx, RequestQuery{NetClass: NetClassTemporary})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "3", records[0].ID)
}

func TestFileRequestStore_Query_SortedByCreation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	later := storedRecord("1", time.Date(2021, 6, 6, 18, 0, 0, 0, time.UTC))
	earlier := storedRecord("9", time.Date(2021, 6, 6, 6, 0, 0, 0, time.UTC))

	mockFileStorage.EXPECT().List(ctx, "requests").Return([]string{
		"requests/2021-06-06_1.json",
		"requests/2021-06-06_9.json",
	}, nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_1.json").Return(jsonBody(t, later), nil)
	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_9.json").Return(jsonBody(t, earlier), nil)

	records, err := store.Query(ctx, RequestQuery{})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "9", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
}

func TestFileRequestStore_Query_ListFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	mockFileStorage.EXPECT().List(ctx, "requests").Return(nil, errors.New("disk gone"))

	_, err := store.Query(ctx, RequestQuery{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestFileRequestStore_LoadStatusLines(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	full := storedRecord("2", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC))

	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_2.json").Return(jsonBody(t, full), nil)

	header := full.CloneHeader()
	require.NoError(t, store.LoadStatusLines(ctx, header))

	assert.True(t, header.StatusLinesLoaded)
	require.Len(t, header.StatusLines, 1)
	assert.Equal(t, "sdsreq", header.StatusLines[0].VolumeID)

	// A second load is a no-op: no further storage read is expected.
	require.NoError(t, store.LoadStatusLines(ctx, header))
}

func TestFileRequestStore_LoadRequestLines(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileRequestStore(mockFileStorage)

	ctx := context.Background()
	full := storedRecord("2", time.Date(2021, 6, 6, 12, 0, 0, 0, time.UTC))

	mockFileStorage.EXPECT().Get(ctx, "requests/2021-06-06_2.json").Return(jsonBody(t, full), nil)

	header := full.CloneHeader()
	require.NoError(t, store.LoadRequestLines(ctx, header))

	assert.True(t, header.RequestLinesLoaded)
	require.Len(t, header.RequestLines, 1)
	assert.Equal(t, "GE.APE", header.RequestLines[0].Stream.StationKey())
	assert.False(t, header.StatusLinesLoaded)
}
