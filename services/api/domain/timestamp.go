package domain

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// TimestampLayout is the canonical wire form for timestamps: naive UTC,
// second precision, no offset.
const TimestampLayout = "2006-01-02T15:04:05"

// timestampLayouts are the accepted input forms, tried in order. Offset
// forms are normalized to UTC and the offset is discarded.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	TimestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-ish timestamp string into naive UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, eris.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, eris.Errorf("unparseable timestamp %q", s)
}

// FormatTimestamp renders a timestamp in the canonical naive UTC form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
