// Package history loads and slices the bulk historical dataset.
package history

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aetherhq/aether/services/api/domain"
)

// Repository reads the historical dataset from a CSV file with at least a
// sensor_id and timestamp column; every other column is treated as a
// pollutant column.
type Repository struct {
	path string
}

// NewRepository creates a repository over the given CSV path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load parses the full dataset. Cell values that are empty or not numeric
// become nil and are left to the cleaning pass to drop.
func (r *Repository) Load() (domain.Dataset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return domain.Dataset{}, eris.Wrapf(err, "history: open %s", r.path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV historical data from a reader.
func Parse(r io.Reader) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Dataset{}, eris.New("history: empty dataset")
	}
	if err != nil {
		return domain.Dataset{}, eris.Wrap(err, "history: read header")
	}

	idCol, tsCol := -1, -1
	pollutants := make([]string, 0, len(header))
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "sensor_id":
			idCol = i
		case "timestamp":
			tsCol = i
		default:
			pollutants = append(pollutants, strings.TrimSpace(name))
		}
	}
	if idCol < 0 || tsCol < 0 {
		return domain.Dataset{}, eris.New("history: dataset must have sensor_id and timestamp columns")
	}

	records := make([]domain.HistoricalRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Dataset{}, eris.Wrap(err, "history: read row")
		}

		rec := domain.HistoricalRecord{
			Values: make(map[string]*float64, len(pollutants)),
		}
		if idCol < len(row) {
			rec.SensorID = strings.TrimSpace(row[idCol])
		}
		if tsCol < len(row) {
			rec.RawTimestamp = strings.TrimSpace(row[tsCol])
		}
		for i, name := range header {
			if i == idCol || i == tsCol || i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				val := v
				rec.Values[strings.TrimSpace(name)] = &val
			}
		}
		records = append(records, rec)
	}

	return domain.Dataset{Pollutants: pollutants, Records: records}, nil
}
