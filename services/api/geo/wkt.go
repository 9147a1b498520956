// Package geo parses the well-known-text point geometry used by the sensor
// catalog ("POINT(lon lat)").
package geo

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Point is a parsed catalog location in lon/lat order.
type Point struct {
	Lon float64
	Lat float64
}

// ParsePoint decodes a WKT POINT. It never panics on malformed input; the
// caller decides skip-vs-fail policy.
func ParsePoint(s string) (Point, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return Point{}, eris.New("geo: empty location")
	}

	g, err := wkt.Unmarshal(trimmed)
	if err != nil {
		return Point{}, eris.Wrapf(err, "geo: parse %q", s)
	}

	pt, ok := g.(*geom.Point)
	if !ok {
		return Point{}, eris.Errorf("geo: %q is not a POINT", s)
	}
	coords := pt.Coords()
	if len(coords) < 2 {
		return Point{}, eris.Errorf("geo: %q has no coordinates", s)
	}

	return Point{Lon: coords[0], Lat: coords[1]}, nil
}

// InRange reports whether the point lies within valid geographic bounds
// (longitude in [-180,180], latitude in [-90,90]).
func (p Point) InRange() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}
