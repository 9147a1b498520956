package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherhq/aether/services/api/catalog"
	"github.com/aetherhq/aether/services/api/domain"
)

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{ID: "s1", Location: "POINT(4.9041 52.3676)", Metadata: map[string]any{"province": "North Holland"}},
		{ID: "s2", Location: "POINT(2000 9999)", Metadata: map[string]any{}},
	}
}

func TestNew_DiscardsInvalidEntries(t *testing.T) {
	reg := New(testEntries())

	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.Has("s1"))
	assert.False(t, reg.Has("s2"))
}

func TestNew_DiscardsMissingIDAndBadWKT(t *testing.T) {
	reg := New([]catalog.Entry{
		{ID: "", Location: "POINT(1 2)"},
		{ID: "s1", Location: "not a point"},
		{ID: "s2", Location: "POINT(1 2)"},
	})

	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.Has("s2"))
}

func TestNew_DuplicateIDLastWins(t *testing.T) {
	reg := New([]catalog.Entry{
		{ID: "s1", Location: "POINT(1 2)", Metadata: map[string]any{"province": "Old"}},
		{ID: "s1", Location: "POINT(3 4)", Metadata: map[string]any{"province": "New"}},
	})

	require.Equal(t, 1, reg.Len())
	info, ok := reg.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "New", info.Province())
	assert.Equal(t, 4.0, info.Latitude)
	assert.Equal(t, 3.0, info.Longitude)
}

func TestHydrate(t *testing.T) {
	reg := New(testEntries())

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	reg.Hydrate([]domain.SensorReading{
		{SensorID: "s1", Readings: domain.Readings{"pm25": 10}, Timestamp: t1},
		{SensorID: "ghost", Readings: domain.Readings{"pm25": 99}, Timestamp: t0},
		{SensorID: "s1", Readings: domain.Readings{"pm25": 12}, Timestamp: t0},
	})

	state := reg.State()
	assert.Equal(t, 3, state.TotalReadings, "unknown sensors still count")
	require.NotNil(t, state.LastUpdate)
	assert.Equal(t, t1, *state.LastUpdate, "max timestamp wins during hydration")

	info, ok := reg.Get("s1")
	require.True(t, ok)
	require.NotNil(t, info.LastUpdate)
	assert.Equal(t, t0, *info.LastUpdate, "later log records win per sensor")
	assert.Equal(t, 12.0, info.LastReading["pm25"])

	assert.Equal(t, 1, reg.ActiveSensors())
}

func TestApply_LatestIngestedWins(t *testing.T) {
	reg := New(testEntries())

	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reg.Hydrate([]domain.SensorReading{
		{SensorID: "s1", Readings: domain.Readings{"pm25": 10}, Timestamp: t1},
	})

	// a live ingest with an earlier timestamp still becomes last_update
	t0 := t1.Add(-time.Hour)
	reg.Apply(domain.SensorReading{SensorID: "s1", Readings: domain.Readings{"pm25": 20}, Timestamp: t0})

	state := reg.State()
	assert.Equal(t, 2, state.TotalReadings)
	require.NotNil(t, state.LastUpdate)
	assert.Equal(t, t0, *state.LastUpdate)
}

func TestProvince_UnknownFallback(t *testing.T) {
	reg := New(testEntries())

	assert.Equal(t, "North Holland", reg.Province("s1"))
	assert.Equal(t, "Unknown", reg.Province("ghost"))
}

func TestSnapshot_SortedCopies(t *testing.T) {
	reg := New([]catalog.Entry{
		{ID: "b", Location: "POINT(1 2)"},
		{ID: "a", Location: "POINT(3 4)"},
	})

	snap := reg.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)

	// mutating the snapshot must not leak into the registry
	snap[0].LastReading = domain.Readings{"pm25": 1}
	info, _ := reg.Get("a")
	assert.Nil(t, info.LastReading)
}
