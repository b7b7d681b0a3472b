package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChiSquaredQuantile(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		df       float64
		expected float64
	}{
		{"95th percentile df=1", 0.95, 1, 3.8414588},
		{"median df=2", 0.5, 2, 1.3862944},
		{"97.5th percentile df=2", 0.975, 2, 7.3777589},
		{"2.5th percentile df=300", 0.025, 300, 253.9123},
		{"97.5th percentile df=302", 0.975, 302, 352.0343},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ChiSquaredQuantile(tt.p, tt.df), 1e-3)
		})
	}
}

func TestChiSquaredQuantileEdges(t *testing.T) {
	assert.Equal(t, 0.0, ChiSquaredQuantile(0, 4))
	assert.True(t, math.IsInf(ChiSquaredQuantile(1, 4), 1))
	assert.True(t, math.IsNaN(ChiSquaredQuantile(-0.1, 4)))
	assert.True(t, math.IsNaN(ChiSquaredQuantile(1.1, 4)))
	assert.True(t, math.IsNaN(ChiSquaredQuantile(0.5, 0)))
	assert.True(t, math.IsNaN(ChiSquaredQuantile(math.NaN(), 2)))
}

func TestChiSquaredCDF(t *testing.T) {
	// Chi-squared with 1 df: P(X <= 3.84) ≈ 0.95
	assert.InDelta(t, 0.95, ChiSquaredCDF(3.84, 1), 0.01)

	// Chi-squared with 2 df: P(X <= 5.99) ≈ 0.95
	assert.InDelta(t, 0.95, ChiSquaredCDF(5.99, 2), 0.01)

	assert.Equal(t, 0.0, ChiSquaredCDF(-1, 3))
	assert.True(t, math.IsNaN(ChiSquaredCDF(1, -2)))
}

func TestQuantileInvertsCDF(t *testing.T) {
	for _, df := range []float64{1, 2, 10, 50, 302} {
		for _, p := range []float64{0.025, 0.5, 0.975} {
			x := ChiSquaredQuantile(p, df)
			assert.InDelta(t, p, ChiSquaredCDF(x, df), 1e-6, "df=%v p=%v", df, p)
		}
	}
}

func TestPoissonCountBounds(t *testing.T) {
	lower, upper := PoissonCountBounds(150, 0.05)
	assert.InDelta(t, 126.956, lower, 0.01)
	assert.InDelta(t, 176.017, upper, 0.01)

	lower, upper = PoissonCountBounds(0, 0.05)
	assert.Equal(t, 0.0, lower)
	assert.InDelta(t, 3.6889, upper, 1e-3)

	// 2.5 rounds half to even
	l1, u1 := PoissonCountBounds(2.5, 0.05)
	l2, u2 := PoissonCountBounds(2, 0.05)
	assert.Equal(t, l2, l1)
	assert.Equal(t, u2, u1)

	lower, upper = PoissonCountBounds(-1, 0.05)
	assert.True(t, math.IsNaN(lower))
	assert.True(t, math.IsNaN(upper))

	lower, _ = PoissonCountBounds(5, 1)
	assert.True(t, math.IsNaN(lower))
}
