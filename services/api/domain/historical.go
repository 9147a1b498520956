package domain

import "time"

// HistoricalRecord is one row of the bulk historical dataset. Values holds
// every pollutant column of the source; a nil entry means the cell was
// missing or not numeric. Timestamp is zero until the cleaning pass parses
// RawTimestamp.
type HistoricalRecord struct {
	SensorID     string
	RawTimestamp string
	Timestamp    time.Time
	Values       map[string]*float64
}

// Value returns the record's value for the given pollutant column, or nil
// when the column is absent for this row.
func (r HistoricalRecord) Value(pollutant string) *float64 {
	return r.Values[pollutant]
}

// Dataset is an ordered historical dataset together with its pollutant
// column set (source column order preserved). The cleaned dataset is held
// read-only for the process lifetime.
type Dataset struct {
	Pollutants []string
	Records    []HistoricalRecord
}

// HasPollutant reports whether the dataset carries the given column.
func (d Dataset) HasPollutant(name string) bool {
	for _, p := range d.Pollutants {
		if p == name {
			return true
		}
	}
	return false
}
