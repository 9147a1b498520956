package domain

import "time"

// Readings maps a pollutant name (e.g. pm25, pm10, no2, o3) to a measured
// concentration.
type Readings map[string]float64

// SensorInfo is the authoritative record for a registered sensor. Instances
// are created when the sensor catalog is loaded and mutated only by
// successful ingestion.
type SensorInfo struct {
	ID        string         `json:"id"`
	Location  string         `json:"location"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Metadata  map[string]any `json:"metadata"`

	LastReading Readings   `json:"last_reading,omitempty"`
	LastUpdate  *time.Time `json:"last_update,omitempty"`
}

// Province returns the province tag from the sensor metadata, falling back
// to "Unknown" when absent or not a string.
func (s *SensorInfo) Province() string {
	if v, ok := s.Metadata["province"].(string); ok && v != "" {
		return v
	}
	return "Unknown"
}

// SensorReading is one timestamped set of pollutant values reported by a
// sensor. Immutable once constructed; persisted append-only.
type SensorReading struct {
	SensorID  string    `json:"sensor_id"`
	Readings  Readings  `json:"readings"`
	Timestamp time.Time `json:"timestamp"`
}
