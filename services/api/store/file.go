package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/domain"
)

// readingRow is the persisted wire form of one reading: naive ISO-8601
// timestamp, readings object as-is.
type readingRow struct {
	SensorID  string          `json:"sensor_id"`
	Readings  domain.Readings `json:"readings"`
	Timestamp string          `json:"timestamp"`
}

// FileStore keeps the reading log as one JSON array on disk. Append reloads
// the array, appends, and rewrites the file; acceptable at low volume only.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store over the given JSON file path. The file may
// not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll reads the full log. A missing or undecodable file yields an empty
// log; rows with unparseable timestamps are skipped with a warning.
func (s *FileStore) LoadAll(ctx context.Context) ([]domain.SensorReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.loadRows()
	readings := make([]domain.SensorReading, 0, len(rows))
	for _, row := range rows {
		ts, err := domain.ParseTimestamp(row.Timestamp)
		if err != nil {
			zap.L().Warn("skipping persisted reading with bad timestamp",
				zap.String("sensor_id", row.SensorID),
				zap.String("timestamp", row.Timestamp))
			continue
		}
		readings = append(readings, domain.SensorReading{
			SensorID:  row.SensorID,
			Readings:  row.Readings,
			Timestamp: ts,
		})
	}
	return readings, nil
}

// Append durably adds one reading to the end of the log.
func (s *FileStore) Append(ctx context.Context, reading domain.SensorReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.loadRows()
	rows = append(rows, readingRow{
		SensorID:  reading.SensorID,
		Readings:  reading.Readings,
		Timestamp: domain.FormatTimestamp(reading.Timestamp),
	})

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return eris.Wrap(err, "file store: encode log")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrapf(err, "file store: create dir for %s", s.path)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "file store: write %s", s.path)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) loadRows() []readingRow {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var rows []readingRow
	if err := json.Unmarshal(data, &rows); err != nil {
		zap.L().Warn("reading log is not valid JSON, starting empty", zap.String("path", s.path))
		return nil
	}
	return rows
}
