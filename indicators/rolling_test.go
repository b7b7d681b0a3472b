package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// assertSeries compares float slices treating NaN as equal to NaN.
func assertSeries(t *testing.T, expected, actual []float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "index %d: expected NaN, got %v", i, actual[i])
			continue
		}
		assert.InDelta(t, expected[i], actual[i], 1e-12, "index %d", i)
	}
}

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		window   int
		opts     []RollingOption
		expected []float64
	}{
		{"full window", 3, nil, []float64{nan, nan, 2, 3, 4}},
		{"min periods", 3, []RollingOption{WithMinPeriods(1)}, []float64{1, 1.5, 2, 3, 4}},
		{"centered", 3, []RollingOption{Centered(), WithMinPeriods(1)}, []float64{1.5, 2, 3, 4, 4.5}},
		{"centered full window", 3, []RollingOption{Centered()}, []float64{nan, 2, 3, 4, nan}},
		{"centered even window", 4, []RollingOption{Centered(), WithMinPeriods(1)}, []float64{1.5, 2, 2.5, 3.5, 4}},
		{"window larger than series", 10, []RollingOption{WithMinPeriods(5)}, []float64{nan, nan, nan, nan, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollingMean(values, tt.window, tt.opts...)
			require.NoError(t, err)
			assertSeries(t, tt.expected, result)
		})
	}
}

func TestRollingMeanMissing(t *testing.T) {
	values := []float64{1, nan, 3, 4, 5}

	result, err := RollingMean(values, 3, WithMinPeriods(2))
	require.NoError(t, err)

	// NaN is skipped in both sum and count
	assertSeries(t, []float64{nan, nan, 2, 3.5, 4}, result)
	assert.True(t, math.IsNaN(values[1]), "input must not be modified")
}

func TestRollingMeanWindowOne(t *testing.T) {
	values := []float64{3, 1.25, nan, 7, -2}

	result, err := RollingMean(values, 1)
	require.NoError(t, err)
	assertSeries(t, values, result)
}

func TestRollingMeanFirstElement(t *testing.T) {
	values := []float64{4.5, 2, 9, 1}
	result, err := RollingMean(values, 4, WithMinPeriods(1))
	require.NoError(t, err)
	assert.Equal(t, values[0], result[0])
}

func TestRollingMeanEmpty(t *testing.T) {
	result, err := RollingMean(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRollingMeanInvalid(t *testing.T) {
	tests := []struct {
		name   string
		window int
		opts   []RollingOption
		field  string
	}{
		{"zero window", 0, nil, "window"},
		{"negative window", -3, nil, "window"},
		{"zero min periods", 3, []RollingOption{WithMinPeriods(0)}, "minPeriods"},
		{"min periods above window", 3, []RollingOption{WithMinPeriods(4)}, "minPeriods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RollingMean([]float64{1, 2, 3}, tt.window, tt.opts...)
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestWindowBounds(t *testing.T) {
	before, after := WindowBounds(7, false)
	assert.Equal(t, 6, before)
	assert.Equal(t, 0, after)

	before, after = WindowBounds(7, true)
	assert.Equal(t, 3, before)
	assert.Equal(t, 3, after)

	before, after = WindowBounds(4, true)
	assert.Equal(t, 2, before)
	assert.Equal(t, 1, after)
}
