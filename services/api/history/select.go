package history

import (
	"sort"
	"time"

	"github.com/aetherhq/aether/services/api/domain"
)

// SensorHistory returns the cleaned records for one sensor, time-ordered.
func SensorHistory(ds domain.Dataset, sensorID string) []domain.HistoricalRecord {
	out := make([]domain.HistoricalRecord, 0)
	for _, rec := range ds.Records {
		if rec.SensorID == sensorID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// MonthWindow restricts cleaned records to one calendar year and month. No
// timezone conversion is applied.
func MonthWindow(ds domain.Dataset, year int, month time.Month) []domain.HistoricalRecord {
	out := make([]domain.HistoricalRecord, 0)
	for _, rec := range ds.Records {
		if rec.Timestamp.Year() == year && rec.Timestamp.Month() == month {
			out = append(out, rec)
		}
	}
	return out
}
