package cleaning

import (
	"github.com/aetherhq/aether/services/api/domain"
)

// PM25UpperBound is the hard cap on plausible pm2.5 rows; anything above is
// treated as a sensor fault and dropped.
const PM25UpperBound = 500.0

// Stats summarizes one cleaning pass over a historical dataset. Computed
// once at startup; immutable thereafter.
type Stats struct {
	RowsLoaded     int     `json:"rows_loaded"`
	RowsKept       int     `json:"rows_kept"`
	RowsDropped    int     `json:"rows_dropped"`
	PercentCleaned float64 `json:"percent_cleaned"`
}

// Clean filters a historical dataset in a single deterministic pass. A row
// is kept when it has a sensor id, a parseable timestamp, a non-negative
// value for every pollutant column of the dataset, and pm25 <= 500 when the
// dataset carries a pm25 column. Kept rows get their Timestamp parsed to
// naive UTC. The input is not mutated.
func Clean(ds domain.Dataset) (domain.Dataset, Stats) {
	loaded := len(ds.Records)
	kept := make([]domain.HistoricalRecord, 0, loaded)

	capPM25 := ds.HasPollutant("pm25")
	for _, rec := range ds.Records {
		if rec.SensorID == "" {
			continue
		}
		ts, err := domain.ParseTimestamp(rec.RawTimestamp)
		if err != nil {
			continue
		}
		if !pollutantsValid(rec, ds.Pollutants) {
			continue
		}
		if capPM25 {
			if v := rec.Value("pm25"); v != nil && *v > PM25UpperBound {
				continue
			}
		}
		rec.Timestamp = ts
		kept = append(kept, rec)
	}

	stats := Stats{
		RowsLoaded:  loaded,
		RowsKept:    len(kept),
		RowsDropped: loaded - len(kept),
	}
	if loaded > 0 {
		stats.PercentCleaned = float64(stats.RowsDropped) / float64(loaded) * 100
	}
	return domain.Dataset{Pollutants: ds.Pollutants, Records: kept}, stats
}

func pollutantsValid(rec domain.HistoricalRecord, pollutants []string) bool {
	for _, p := range pollutants {
		v := rec.Value(p)
		if v == nil || *v < 0 {
			return false
		}
	}
	return true
}
