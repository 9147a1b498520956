// Package store persists the append-only reading log.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/domain"
)

// ReadingStore is the durable append-only log of ingested readings. LoadAll
// returns the full log in insertion order for startup hydration; records
// whose persisted timestamp cannot be parsed are skipped.
type ReadingStore interface {
	LoadAll(ctx context.Context) ([]domain.SensorReading, error)
	Append(ctx context.Context, reading domain.SensorReading) error
	Close() error
}

// Open constructs the configured ReadingStore backend. Driver "file" keeps
// the log as a single JSON array, "sqlite" and "postgres" append to a
// readings table.
func Open(ctx context.Context, driver, dsn string) (ReadingStore, error) {
	switch driver {
	case "file":
		return NewFileStore(dsn), nil
	case "sqlite":
		return NewSQLiteStore(dsn)
	case "postgres":
		return NewPostgresStore(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

// decodeReadings parses a persisted readings payload. Undecodable payloads
// are reported with a warning and skipped; every SQL backend goes through
// this so skips surface the same way.
func decodeReadings(sensorID string, raw []byte) (domain.Readings, bool) {
	var readings domain.Readings
	if err := json.Unmarshal(raw, &readings); err != nil {
		zap.L().Warn("skipping persisted reading with bad payload",
			zap.String("sensor_id", sensorID),
			zap.Error(err))
		return nil, false
	}
	return readings, true
}
