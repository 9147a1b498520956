// Package cleaning holds the data-shaping pipeline: incoming-reading
// validation, historical dataset cleaning, and pm2.5 health categorization.
package cleaning

import (
	"encoding/json"
	"fmt"
)

// ValidateReadings checks an incoming readings payload against the required
// pollutant set. It returns ok=true iff the error list is empty; errors are
// appended in pollutant order, one missing-key or non-numeric message per
// required pollutant. Extra keys are ignored. No side effects.
func ValidateReadings(readings map[string]any, pollutants []string) (bool, []string) {
	if len(readings) == 0 {
		return false, []string{"readings must be a non-empty object"}
	}

	var errs []string
	for _, name := range pollutants {
		v, ok := readings[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("missing '%s'", name))
			continue
		}
		if !isNumeric(v) {
			errs = append(errs, fmt.Sprintf("'%s' must be numeric", name))
		}
	}
	return len(errs) == 0, errs
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

// NumericReadings copies the numeric entries of a raw payload into a typed
// readings map. Call only after ValidateReadings accepted the payload; any
// non-numeric extra keys are dropped.
func NumericReadings(raw map[string]any) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case float32:
			out[k] = float64(n)
		case int:
			out[k] = float64(n)
		case int32:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case json.Number:
			if f, err := n.Float64(); err == nil {
				out[k] = f
			}
		}
	}
	return out
}
