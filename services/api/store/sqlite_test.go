package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherhq/aether/services/api/domain"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "readings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_EmptyLog(t *testing.T) {
	s := newTestSQLite(t)
	readings, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestSQLiteStore_AppendAndLoadAll(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	t0 := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, domain.SensorReading{
		SensorID:  "s1",
		Readings:  domain.Readings{"pm25": 12, "pm10": 22, "no2": 4, "o3": 33},
		Timestamp: t0,
	}))
	require.NoError(t, s.Append(ctx, domain.SensorReading{
		SensorID:  "s1",
		Readings:  domain.Readings{"pm25": 14},
		Timestamp: t0.Add(time.Minute),
	}))

	readings, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, t0, readings[0].Timestamp)
	assert.Equal(t, 12.0, readings[0].Readings["pm25"])
	assert.Equal(t, 14.0, readings[1].Readings["pm25"])
}

func TestSQLiteStore_PreservesInsertionOrder(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	// insert out of chronological order; log order must win
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		require.NoError(t, s.Append(ctx, domain.SensorReading{
			SensorID:  "s1",
			Readings:  domain.Readings{"pm25": float64(offset / time.Hour)},
			Timestamp: base.Add(offset),
		}))
	}

	readings, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, base.Add(2*time.Hour), readings[0].Timestamp)
	assert.Equal(t, base, readings[1].Timestamp)
}

func TestSQLiteStore_SkipsCorruptRows(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, domain.SensorReading{
		SensorID:  "s1",
		Readings:  domain.Readings{"pm25": 12},
		Timestamp: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}))
	_, err := s.db.Exec(`INSERT INTO readings (sensor_id, readings, ts) VALUES (?, ?, ?)`,
		"s1", "{not json", "2024-02-01T09:00:00")
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO readings (sensor_id, readings, ts) VALUES (?, ?, ?)`,
		"s1", `{"pm25": 13}`, "whenever")
	require.NoError(t, err)

	readings, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 12.0, readings[0].Readings["pm25"])
}

func TestDecodeReadings(t *testing.T) {
	readings, ok := decodeReadings("s1", []byte(`{"pm25": 12.5, "pm10": 20}`))
	require.True(t, ok)
	assert.Equal(t, 12.5, readings["pm25"])

	_, ok = decodeReadings("s1", []byte("{not json"))
	assert.False(t, ok)
}
