// Package aggregate computes category distribution reports over the cleaned
// historical dataset.
package aggregate

import (
	"sort"

	"github.com/aetherhq/aether/services/api/cleaning"
	"github.com/aetherhq/aether/services/api/domain"
	"github.com/aetherhq/aether/services/api/registry"
)

// RegionBreakdown is the category percentage row for one region. Percent is
// aligned with the fixed category order of the parent Distribution; every
// category gets an entry, absent combinations report 0.
type RegionBreakdown struct {
	Region  string    `json:"region"`
	Percent []float64 `json:"percent"`
	Counts  []int     `json:"counts"`
	Total   int       `json:"total"`
}

// Distribution is the per-region pm2.5 category percentage table for one
// calendar month.
type Distribution struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	Categories []cleaning.Category `json:"categories"`
	Regions    []RegionBreakdown   `json:"regions"`
}

// Compute builds the distribution for records already restricted to the
// requested year and month. Each record's sensor id maps to a region via
// the registry ("Unknown" when the sensor or its region tag is absent) and
// its pm25 value maps to a category via the configured thresholds. Returns
// ErrNoData when the window is empty.
func Compute(records []domain.HistoricalRecord, reg *registry.Registry, thresholds cleaning.Thresholds, year, month int) (*Distribution, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}

	counts := make(map[string]map[cleaning.Category]int)
	for _, rec := range records {
		region := reg.Province(rec.SensorID)
		cat := cleaning.Categorize(rec.Value("pm25"), thresholds)
		if counts[region] == nil {
			counts[region] = make(map[cleaning.Category]int)
		}
		counts[region][cat]++
	}

	regions := make([]string, 0, len(counts))
	for region := range counts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	dist := &Distribution{
		Year:       year,
		Month:      month,
		Categories: cleaning.CategoryOrder,
		Regions:    make([]RegionBreakdown, 0, len(regions)),
	}
	for _, region := range regions {
		total := 0
		for _, n := range counts[region] {
			total += n
		}

		row := RegionBreakdown{
			Region:  region,
			Percent: make([]float64, len(cleaning.CategoryOrder)),
			Counts:  make([]int, len(cleaning.CategoryOrder)),
			Total:   total,
		}
		for i, cat := range cleaning.CategoryOrder {
			n := counts[region][cat]
			row.Counts[i] = n
			if total > 0 {
				row.Percent[i] = float64(n) / float64(total) * 100
			}
		}
		dist.Regions = append(dist.Regions, row)
	}
	return dist, nil
}
