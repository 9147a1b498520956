package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pm25Bands = Thresholds{Safe: 25, Moderate: 50, Danger: 75}

func TestCategorize_Bands(t *testing.T) {
	tests := []struct {
		value float64
		want  Category
	}{
		{0, CategorySafe},
		{25, CategorySafe},
		{25.0001, CategoryModerate},
		{50, CategoryModerate},
		{50.0001, CategoryUnhealthy},
		{75, CategoryUnhealthy},
		{75.0001, CategoryDangerous},
		{500, CategoryDangerous},
	}
	for _, tt := range tests {
		v := tt.value
		assert.Equal(t, tt.want, Categorize(&v, pm25Bands), "value %v", tt.value)
	}
}

func TestCategorize_NilIsNoData(t *testing.T) {
	assert.Equal(t, CategoryNoData, Categorize(nil, pm25Bands))
}

func TestThresholdsFor(t *testing.T) {
	m := map[string]float64{
		"pm25_safe": 25, "pm25_moderate": 50, "pm25_danger": 75,
		"pm10_safe": 50, "pm10_moderate": 100, "pm10_danger": 150,
	}

	got, err := ThresholdsFor(m, "pm25")
	require.NoError(t, err)
	assert.Equal(t, pm25Bands, got)
}

func TestThresholdsFor_MissingBand(t *testing.T) {
	_, err := ThresholdsFor(map[string]float64{"pm25_safe": 25}, "pm25")
	assert.Error(t, err)
}

func TestThresholdsFor_Unordered(t *testing.T) {
	_, err := ThresholdsFor(map[string]float64{
		"pm25_safe": 75, "pm25_moderate": 50, "pm25_danger": 25,
	}, "pm25")
	assert.Error(t, err)
}
