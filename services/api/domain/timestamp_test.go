package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_NaiveForm(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-01T02:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 2, 30, 0, 0, time.UTC), ts)
}

func TestParseTimestamp_OffsetNormalizedToUTC(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-01T02:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC), ts)
}

func TestParseTimestamp_SpaceSeparatorAndDateOnly(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-05 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), ts)

	ts, err = ParseTimestamp("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ts)
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "not-a-time", "2024-13-40T99:00:00"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatTimestamp_NaiveUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 1, 1, 3, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-01T02:00:00", FormatTimestamp(ts))
}

func TestSensorInfo_Province(t *testing.T) {
	s := &SensorInfo{Metadata: map[string]any{"province": "North Holland"}}
	assert.Equal(t, "North Holland", s.Province())

	assert.Equal(t, "Unknown", (&SensorInfo{Metadata: map[string]any{}}).Province())
	assert.Equal(t, "Unknown", (&SensorInfo{Metadata: map[string]any{"province": 7}}).Province())
}
