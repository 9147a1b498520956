package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/aetherhq/aether/services/api/domain"
)

// SQLiteStore implements ReadingStore over modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS readings (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	sensor_id TEXT NOT NULL,
	readings  TEXT NOT NULL,
	ts        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_readings_sensor_id ON readings(sensor_id);
`

// NewSQLiteStore opens (and migrates) a SQLite reading log at the given
// path, with WAL mode enabled.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

// LoadAll returns the log in insertion order, skipping undecodable rows.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]domain.SensorReading, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sensor_id, readings, ts FROM readings ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load readings")
	}
	defer rows.Close()

	out := make([]domain.SensorReading, 0)
	for rows.Next() {
		var (
			sensorID string
			rawJSON  string
			rawTS    string
		)
		if err := rows.Scan(&sensorID, &rawJSON, &rawTS); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan reading")
		}
		rec, ok := decodeRow(sensorID, []byte(rawJSON), rawTS)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate readings")
}

// Append inserts one reading at the end of the log.
func (s *SQLiteStore) Append(ctx context.Context, reading domain.SensorReading) error {
	payload, err := json.Marshal(reading.Readings)
	if err != nil {
		return eris.Wrap(err, "sqlite: encode readings")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO readings (sensor_id, readings, ts) VALUES (?, ?, ?)`,
		reading.SensorID, string(payload), domain.FormatTimestamp(reading.Timestamp))
	return eris.Wrap(err, "sqlite: append reading")
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func decodeRow(sensorID string, rawJSON []byte, rawTS string) (domain.SensorReading, bool) {
	ts, err := domain.ParseTimestamp(rawTS)
	if err != nil {
		zap.L().Warn("skipping persisted reading with bad timestamp",
			zap.String("sensor_id", sensorID),
			zap.String("timestamp", rawTS))
		return domain.SensorReading{}, false
	}
	readings, ok := decodeReadings(sensorID, rawJSON)
	if !ok {
		return domain.SensorReading{}, false
	}
	return domain.SensorReading{SensorID: sensorID, Readings: readings, Timestamp: ts}, true
}
