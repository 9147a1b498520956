package cleaning

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Category is the discrete health classification of a pollutant value.
type Category string

const (
	CategorySafe      Category = "Safe"
	CategoryModerate  Category = "Moderate"
	CategoryUnhealthy Category = "Unhealthy"
	CategoryDangerous Category = "Dangerous"
	CategoryNoData    Category = "No data"
)

// CategoryOrder is the fixed reporting order for category breakdowns.
var CategoryOrder = []Category{
	CategorySafe,
	CategoryModerate,
	CategoryUnhealthy,
	CategoryDangerous,
	CategoryNoData,
}

// Thresholds are the ordered band boundaries for one pollutant
// (safe <= moderate <= danger). Bands are closed on the lower side, so a
// value equal to a boundary resolves to the lower-severity category.
type Thresholds struct {
	Safe     float64
	Moderate float64
	Danger   float64
}

// ThresholdsFor extracts the band boundaries for one pollutant from the
// configured "<pollutant>_safe/_moderate/_danger" threshold map.
func ThresholdsFor(m map[string]float64, pollutant string) (Thresholds, error) {
	t := Thresholds{}
	for _, band := range []struct {
		suffix string
		dst    *float64
	}{
		{"safe", &t.Safe},
		{"moderate", &t.Moderate},
		{"danger", &t.Danger},
	} {
		key := fmt.Sprintf("%s_%s", pollutant, band.suffix)
		v, ok := m[key]
		if !ok {
			return Thresholds{}, eris.Errorf("missing threshold %q", key)
		}
		*band.dst = v
	}
	if t.Safe > t.Moderate || t.Moderate > t.Danger {
		return Thresholds{}, eris.Errorf("thresholds for %q are not ordered", pollutant)
	}
	return t, nil
}

// Categorize maps a pollutant concentration to its health category. A nil
// value yields CategoryNoData.
func Categorize(v *float64, t Thresholds) Category {
	switch {
	case v == nil:
		return CategoryNoData
	case *v <= t.Safe:
		return CategorySafe
	case *v <= t.Moderate:
		return CategoryModerate
	case *v <= t.Danger:
		return CategoryUnhealthy
	default:
		return CategoryDangerous
	}
}
