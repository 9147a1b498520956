package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/aetherhq/aether/services/api/domain"
)

// PostgresStore implements ReadingStore over a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresMigration = `
CREATE SCHEMA IF NOT EXISTS aether;

CREATE TABLE IF NOT EXISTS aether.readings (
	id        BIGSERIAL PRIMARY KEY,
	sensor_id TEXT NOT NULL,
	readings  JSONB NOT NULL,
	ts        TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_aether_readings_sensor_id ON aether.readings (sensor_id);
`

const loadReadingsSQL = `
    SELECT sensor_id, readings, ts
    FROM aether.readings
    ORDER BY id
`

const appendReadingSQL = `
    INSERT INTO aether.readings (sensor_id, readings, ts)
    VALUES ($1, $2, $3)
`

// NewPostgresStore creates a reading log backed by a pgx pool and ensures
// the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}
	return &PostgresStore{pool: pool}, nil
}

// LoadAll returns the full log in insertion order.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]domain.SensorReading, error) {
	rows, err := s.pool.Query(ctx, loadReadingsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load readings")
	}
	defer rows.Close()

	out := make([]domain.SensorReading, 0)
	for rows.Next() {
		var (
			rec     domain.SensorReading
			rawJSON []byte
		)
		if err := rows.Scan(&rec.SensorID, &rawJSON, &rec.Timestamp); err != nil {
			return nil, eris.Wrap(err, "postgres: scan reading")
		}
		readings, ok := decodeReadings(rec.SensorID, rawJSON)
		if !ok {
			continue
		}
		rec.Readings = readings
		rec.Timestamp = rec.Timestamp.UTC()
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate readings")
}

// Append inserts one reading at the end of the log.
func (s *PostgresStore) Append(ctx context.Context, reading domain.SensorReading) error {
	payload, err := json.Marshal(reading.Readings)
	if err != nil {
		return eris.Wrap(err, "postgres: encode readings")
	}
	_, err = s.pool.Exec(ctx, appendReadingSQL, reading.SensorID, payload, reading.Timestamp.UTC())
	return eris.Wrap(err, "postgres: append reading")
}

// Close releases the pool resources.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
