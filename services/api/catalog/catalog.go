// Package catalog loads the sensor catalog file consumed at startup.
package catalog

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Entry is one raw catalog row: a sensor id, a WKT point location, and
// free-form metadata. Validation happens when the registry is built.
type Entry struct {
	ID       string         `json:"id"`
	Location string         `json:"location"`
	Metadata map[string]any `json:"metadata"`
}

// Load reads a JSON sensor catalog from disk.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "catalog: decode %s", path)
	}
	return entries, nil
}
