// Package registry holds the in-memory authoritative sensor set and the
// aggregate ingestion counters shared by request handlers.
package registry

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/catalog"
	"github.com/aetherhq/aether/services/api/domain"
	"github.com/aetherhq/aether/services/api/geo"
)

// State carries the aggregate counters mutated once per successful ingest.
type State struct {
	TotalReadings int
	LastUpdate    *time.Time
}

// Registry maps sensor id to SensorInfo. Sensors are never removed during
// the process lifetime; concurrent mutation is serialized by an internal
// mutex.
type Registry struct {
	mu      sync.Mutex
	sensors map[string]*domain.SensorInfo
	state   State
}

// New builds a registry from raw catalog entries. Entries with a missing
// id, an unparseable WKT location, or out-of-range coordinates are
// discarded with a warning. Duplicate ids overwrite (last entry wins).
func New(entries []catalog.Entry) *Registry {
	log := zap.L()
	sensors := make(map[string]*domain.SensorInfo, len(entries))

	for _, entry := range entries {
		if entry.ID == "" {
			log.Warn("discarding catalog entry without id", zap.String("location", entry.Location))
			continue
		}
		pt, err := geo.ParsePoint(entry.Location)
		if err != nil {
			log.Warn("discarding sensor with invalid location",
				zap.String("sensor_id", entry.ID),
				zap.String("location", entry.Location),
				zap.Error(err))
			continue
		}
		if !pt.InRange() {
			log.Warn("discarding sensor with out-of-range coordinates",
				zap.String("sensor_id", entry.ID),
				zap.Float64("lon", pt.Lon),
				zap.Float64("lat", pt.Lat))
			continue
		}
		if _, dup := sensors[entry.ID]; dup {
			log.Warn("duplicate sensor id in catalog, keeping last entry", zap.String("sensor_id", entry.ID))
		}

		metadata := entry.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		sensors[entry.ID] = &domain.SensorInfo{
			ID:        entry.ID,
			Location:  entry.Location,
			Latitude:  pt.Lat,
			Longitude: pt.Lon,
			Metadata:  metadata,
		}
	}

	log.Info("sensor registry loaded",
		zap.Int("sensors", len(sensors)),
		zap.Int("catalog_entries", len(entries)))

	return &Registry{sensors: sensors}
}

// Hydrate rebuilds last-known state from the full persisted reading log.
// Every record counts toward total_readings and the running maximum
// timestamp, whether or not its sensor is known; records for known sensors
// additionally set that sensor's last reading and last update (later
// records in log order win). Runs once at startup.
func (r *Registry) Hydrate(records []domain.SensorReading) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.TotalReadings += len(records)
	for _, rec := range records {
		ts := rec.Timestamp
		if r.state.LastUpdate == nil || ts.After(*r.state.LastUpdate) {
			t := ts
			r.state.LastUpdate = &t
		}
		if info, ok := r.sensors[rec.SensorID]; ok {
			t := ts
			info.LastReading = rec.Readings
			info.LastUpdate = &t
		}
	}
}

// Has reports whether a sensor id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sensors[id]
	return ok
}

// Len returns the number of registered sensors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sensors)
}

// Get returns a copy of the sensor record for id.
func (r *Registry) Get(id string) (domain.SensorInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.sensors[id]
	if !ok {
		return domain.SensorInfo{}, false
	}
	return copyInfo(info), true
}

// Snapshot returns copies of every sensor record, ordered by id.
func (r *Registry) Snapshot() []domain.SensorInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.SensorInfo, 0, len(r.sensors))
	for _, info := range r.sensors {
		out = append(out, copyInfo(info))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Province maps a sensor id to its province tag, falling back to "Unknown"
// for unknown sensors.
func (r *Registry) Province(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.sensors[id]
	if !ok {
		return "Unknown"
	}
	return info.Province()
}

// Apply records one successful ingest: it bumps total_readings, sets
// last_update to the reading's timestamp (latest ingested wins, regardless
// of chronology), and updates the target sensor's last reading.
func (r *Registry) Apply(reading domain.SensorReading) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.TotalReadings++
	t := reading.Timestamp
	r.state.LastUpdate = &t

	if info, ok := r.sensors[reading.SensorID]; ok {
		info.LastReading = reading.Readings
		info.LastUpdate = &t
	}
}

// State returns the current aggregate counters.
func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := State{TotalReadings: r.state.TotalReadings}
	if r.state.LastUpdate != nil {
		t := *r.state.LastUpdate
		s.LastUpdate = &t
	}
	return s
}

// ActiveSensors counts sensors that have ever reported.
func (r *Registry) ActiveSensors() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := 0
	for _, info := range r.sensors {
		if info.LastUpdate != nil {
			active++
		}
	}
	return active
}

func copyInfo(info *domain.SensorInfo) domain.SensorInfo {
	out := *info
	if info.LastReading != nil {
		readings := make(domain.Readings, len(info.LastReading))
		for k, v := range info.LastReading {
			readings[k] = v
		}
		out.LastReading = readings
	}
	if info.LastUpdate != nil {
		t := *info.LastUpdate
		out.LastUpdate = &t
	}
	return out
}
