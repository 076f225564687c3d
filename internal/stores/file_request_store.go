package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"reqlog-analytics/internal/models"
	"reqlog-analytics/internal/shared/filestorages"
)

var (
	ErrRequestAlreadyExists = errors.New("request record already exists")
)

// fileRequestStore is a file-backed reference implementation of
// RequestStore. Each request is one JSON document keyed by its creation day
// and ID ("requests/<YYYY-MM-DD>_<id>.json"), so coarse time-range queries
// reduce to a key-prefix scan. Query returns bare record headers; the lazy
// load operations re-read the document and attach the requested sub-lines.
type fileRequestStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

// FileRequestStore extends RequestStore with the write operation used by
// log ingestion and test seeding.
type FileRequestStore interface {
	RequestStore
	Put(ctx context.Context, record *models.RequestRecord) error
}

func NewFileRequestStore(fileStorage filestorages.FileStorage) FileRequestStore {
	return &fileRequestStore{fileStorage: fileStorage, dir: "requests"}
}

func (s *fileRequestStore) Put(ctx context.Context, record *models.RequestRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal request record: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.keyFor(record), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrRequestAlreadyExists
		}
		return fmt.Errorf("%w: put request record: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *fileRequestStore) Query(ctx context.Context, q RequestQuery) ([]*models.RequestRecord, error) {
	keys, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list request records: %w", ErrStoreUnavailable, err)
	}

	var records []*models.RequestRecord
	for _, key := range keys {
		if !s.keyInRange(key, q) {
			continue
		}

		record, err := s.readRecord(ctx, key)
		if err != nil {
			return nil, err
		}
		if !s.matches(record, q) {
			continue
		}

		// Return bare headers; sub-lines stay unloaded until requested.
		records = append(records, record.CloneHeader())
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *fileRequestStore) LoadStatusLines(ctx context.Context, record *models.RequestRecord) error {
	if record.StatusLinesLoaded {
		return nil
	}
	doc, err := s.readRecord(ctx, s.keyFor(record))
	if err != nil {
		return err
	}
	record.StatusLines = doc.StatusLines
	record.StatusLinesLoaded = true
	return nil
}

func (s *fileRequestStore) LoadRequestLines(ctx context.Context, record *models.RequestRecord) error {
	if record.RequestLinesLoaded {
		return nil
	}
	doc, err := s.readRecord(ctx, s.keyFor(record))
	if err != nil {
		return err
	}
	record.RequestLines = doc.RequestLines
	record.RequestLinesLoaded = true
	return nil
}

func (s *fileRequestStore) keyFor(record *models.RequestRecord) string {
	return fmt.Sprintf("%s/%s_%s.json", s.dir, models.DayKey(record.CreatedAt), record.ID)
}

// keyInRange prunes documents by key alone: day prefix against the query
// range, ID suffix against an exact-ID query. An ID query ignores the range
// (the original's by-ID lookup bypasses all other filters).
func (s *fileRequestStore) keyInRange(key string, q RequestQuery) bool {
	name := strings.TrimSuffix(strings.TrimPrefix(key, s.dir+"/"), ".json")
	day, id, ok := strings.Cut(name, "_")
	if !ok {
		return false
	}
	if q.RequestID != "" {
		return id == q.RequestID
	}
	if !q.Start.IsZero() && day < models.DayKey(q.Start) {
		return false
	}
	if !q.End.IsZero() && day > models.DayKey(q.End) {
		return false
	}
	return true
}

func (s *fileRequestStore) readRecord(ctx context.Context, key string) (*models.RequestRecord, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: get request record %q: %w", ErrStoreUnavailable, key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("%w: read request record %q: %w", ErrStoreUnavailable, key, err)
	}
	var record models.RequestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: unmarshal request record %q: %w", ErrStoreUnavailable, key, err)
	}
	return &record, nil
}

func (s *fileRequestStore) matches(record *models.RequestRecord, q RequestQuery) bool {
	if q.RequestID != "" {
		return record.ID == q.RequestID && record.Summary != nil
	}

	// Unfinished requests carry no summary and never enter reports.
	if record.Summary == nil {
		return false
	}
	if !q.Start.IsZero() && record.CreatedAt.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && !record.CreatedAt.Before(q.End) {
		return false
	}
	if !matchLike(q.UserID, record.UserID) {
		return false
	}
	if !matchLike(q.Type, string(record.Type)) {
		return false
	}
	if q.HasStreamFilter() {
		return s.anyLineMatches(record, q)
	}
	return true
}

// anyLineMatches reports whether at least one request line satisfies the
// coarse stream and net-class patterns.
func (s *fileRequestStore) anyLineMatches(record *models.RequestRecord, q RequestQuery) bool {
	for i := range record.RequestLines {
		line := &record.RequestLines[i]
		if !matchLike(q.Network, line.Stream.Network) {
			continue
		}
		if !matchLike(q.Station, line.Stream.Station) {
			continue
		}
		if !matchLike(q.Location, line.Stream.Location) {
			continue
		}
		if !matchLike(q.Channel, line.Stream.Channel) {
			continue
		}
		if q.NetClass != "" && q.NetClass != NetClassAny && q.NetClass != netClassOf(line.Stream.Network) {
			continue
		}
		return true
	}
	return false
}
