// Package ingest orchestrates validation, authorization, persistence, and
// registry updates for incoming sensor readings.
package ingest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/cleaning"
	"github.com/aetherhq/aether/services/api/domain"
	"github.com/aetherhq/aether/services/api/metrics"
	"github.com/aetherhq/aether/services/api/registry"
	"github.com/aetherhq/aether/services/api/store"
)

// Service handles one incoming reading at a time. A single mutex serializes
// the validate -> persist -> update sequence so concurrent ingests cannot
// lose counter updates; the hot path is I/O-bound on persistence, so one
// lock is sufficient at this volume.
type Service struct {
	mu         sync.Mutex
	registry   *registry.Registry
	store      store.ReadingStore
	pollutants []string
	startedAt  time.Time
	now        func() time.Time
}

// New constructs the ingestion service. startedAt anchors uptime reporting
// for the process lifetime.
func New(reg *registry.Registry, st store.ReadingStore, pollutants []string, startedAt time.Time) *Service {
	return &Service{
		registry:   reg,
		store:      st,
		pollutants: pollutants,
		startedAt:  startedAt,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Ingest validates and persists one reading. Unknown sensors yield
// UnauthorizedSensorError, payloads rejected by validation yield
// InvalidReadingError. The timestamp defaults to current naive UTC time
// when not supplied. The durable append happens before any in-memory
// counter is touched, so a crash between the two leaves counters
// recoverable by re-hydration but never ahead of durable state.
func (s *Service) Ingest(ctx context.Context, sensorID string, readings map[string]any, ts *time.Time) (domain.SensorReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Has(sensorID) {
		metrics.IngestsRejectedTotal.WithLabelValues("unauthorized").Inc()
		return domain.SensorReading{}, &domain.UnauthorizedSensorError{SensorID: sensorID}
	}

	ok, errs := cleaning.ValidateReadings(readings, s.pollutants)
	if !ok {
		metrics.IngestsRejectedTotal.WithLabelValues("invalid").Inc()
		return domain.SensorReading{}, &domain.InvalidReadingError{Errors: errs}
	}

	timestamp := s.now()
	if ts != nil {
		timestamp = ts.UTC()
	}
	reading := domain.SensorReading{
		SensorID:  sensorID,
		Readings:  cleaning.NumericReadings(readings),
		Timestamp: timestamp,
	}

	if err := s.store.Append(ctx, reading); err != nil {
		return domain.SensorReading{}, err
	}
	metrics.ReadingsPersistedTotal.Inc()

	s.registry.Apply(reading)
	metrics.IngestsTotal.Inc()

	zap.L().Info("reading ingested",
		zap.String("sensor_id", sensorID),
		zap.Time("timestamp", timestamp))
	return reading, nil
}

// Status is the service health summary returned by the status query.
type Status struct {
	Status        string     `json:"status"`
	UptimeSeconds int        `json:"uptime_seconds"`
	ActiveSensors int        `json:"active_sensors"`
	TotalReadings int        `json:"total_readings"`
	LastUpdate    *time.Time `json:"last_update"`
}

// Status reports current service health: "healthy" once at least one
// sensor has ever reported, "degraded" otherwise. Uptime is computed fresh
// from the construction-time anchor.
func (s *Service) Status() Status {
	state := s.registry.State()
	active := s.registry.ActiveSensors()

	status := "degraded"
	if active > 0 {
		status = "healthy"
	}
	return Status{
		Status:        status,
		UptimeSeconds: int(s.now().Sub(s.startedAt).Seconds()),
		ActiveSensors: active,
		TotalReadings: state.TotalReadings,
		LastUpdate:    state.LastUpdate,
	}
}
