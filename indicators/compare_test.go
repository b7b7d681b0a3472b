package indicators

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRatio(t *testing.T) {
	tests := []struct {
		name     string
		casesA   float64
		popA     float64
		casesB   float64
		popB     float64
		expected float64
	}{
		{"equal rates", 50, 10000, 50, 10000, 1},
		{"double rate", 50, 10000, 25, 10000, 2},
		{"half rate", 25, 10000, 50, 10000, 0.5},
		{"different populations", 30, 15000, 40, 10000, 0.5},
		{"both zero", 0, 10000, 0, 20000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, err := RateRatio(tt.casesA, tt.popA, tt.casesB, tt.popB, DefaultScale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rr)
		})
	}
}

func TestRateRatioIdenticalGroups(t *testing.T) {
	for _, g := range [][2]float64{{1, 3}, {7, 123457}, {0.3, 11}, {99999, 100000}} {
		rr, err := RateRatio(g[0], g[1], g[0], g[1], DefaultScale)
		require.NoError(t, err)
		assert.Equal(t, 1.0, rr)
	}
}

func TestRateRatioZeroReference(t *testing.T) {
	_, err := RateRatio(10, 10000, 0, 10000, DefaultScale)
	require.ErrorIs(t, err, ErrDomain)
	assert.Contains(t, err.Error(), "reference rate is zero")
}

func TestRateRatioInvalidPopulation(t *testing.T) {
	_, err := RateRatio(10, 0, 10, 10000, DefaultScale)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "RatePer", de.Op)
	assert.Equal(t, "population", de.Field)

	_, err = RateRatio(10, 100, 10, -1, DefaultScale)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = RateRatio(-1, 100, 10, 100, DefaultScale)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestRateDifference(t *testing.T) {
	tests := []struct {
		name     string
		casesA   float64
		popA     float64
		casesB   float64
		popB     float64
		scale    float64
		expected float64
	}{
		{"positive", 50, 10000, 25, 10000, DefaultScale, 250},
		{"negative", 25, 10000, 50, 10000, DefaultScale, -250},
		{"zero", 50, 10000, 50, 10000, DefaultScale, 0},
		{"per 1000", 30, 15000, 40, 10000, 1000, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, err := RateDifference(tt.casesA, tt.popA, tt.casesB, tt.popB, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rd)
		})
	}

	_, err := RateDifference(10, 10000, 10, 0, DefaultScale)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestComparisonSymmetry(t *testing.T) {
	groups := [][2]float64{{30, 15000}, {40, 10000}, {7, 2500}, {123, 98765}}
	for _, a := range groups {
		for _, b := range groups {
			ab, err := RateRatio(a[0], a[1], b[0], b[1], DefaultScale)
			require.NoError(t, err)
			ba, err := RateRatio(b[0], b[1], a[0], a[1], DefaultScale)
			require.NoError(t, err)
			assert.InDelta(t, 1/ba, ab, 1e-12)

			dab, err := RateDifference(a[0], a[1], b[0], b[1], DefaultScale)
			require.NoError(t, err)
			dba, err := RateDifference(b[0], b[1], a[0], a[1], DefaultScale)
			require.NoError(t, err)
			assert.Equal(t, -dba, dab)
		}
	}
}

func TestCompare(t *testing.T) {
	a := RateInput{Label: "North", Cases: 50, Population: 10000}
	b := RateInput{Label: "South", Cases: 25, Population: 10000}

	c, err := Compare(a, b, DefaultScale)
	require.NoError(t, err)
	assert.Equal(t, "North", c.LabelA)
	assert.Equal(t, "South", c.LabelB)
	assert.Equal(t, 500.0, c.RateA)
	assert.Equal(t, 250.0, c.RateB)
	assert.Equal(t, 250.0, c.Difference)
	assert.True(t, c.RatioDefined)
	assert.Equal(t, 2.0, c.Ratio)
}

func TestCompareZeroReference(t *testing.T) {
	a := RateInput{Label: "A", Cases: 5, Population: 1000}
	b := RateInput{Label: "B", Cases: 0, Population: 1000}

	c, err := Compare(a, b, DefaultScale)
	require.NoError(t, err)
	assert.False(t, c.RatioDefined)
	assert.True(t, math.IsNaN(c.Ratio))
	assert.Equal(t, 500.0, c.Difference)

	c, err = Compare(b, b, DefaultScale)
	require.NoError(t, err)
	assert.True(t, c.RatioDefined)
	assert.Equal(t, 1.0, c.Ratio)

	_, err = Compare(a, RateInput{Label: "C", Cases: 1}, DefaultScale)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestComparisonJSON(t *testing.T) {
	t.Run("defined ratio", func(t *testing.T) {
		c, err := Compare(RateInput{Label: "A", Cases: 50, Population: 10000},
			RateInput{Label: "B", Cases: 25, Population: 10000}, DefaultScale)
		require.NoError(t, err)

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `{"label_a":"A","label_b":"B","rate_a":500,"rate_b":250,`+
			`"difference":250,"ratio":2,"ratio_defined":true}`, string(data))

		var back Comparison
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, c, back)
	})

	t.Run("undefined ratio", func(t *testing.T) {
		c, err := Compare(RateInput{Label: "A", Cases: 5, Population: 10000},
			RateInput{Label: "B", Cases: 0, Population: 10000}, DefaultScale)
		require.NoError(t, err)
		require.False(t, c.RatioDefined)

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"ratio":null`)

		var back Comparison
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, math.IsNaN(back.Ratio))
		assert.False(t, back.RatioDefined)
		assert.Equal(t, c.RateA, back.RateA)
	})

	t.Run("slice encoding", func(t *testing.T) {
		rows, err := CompareTable([]RateInput{
			{Label: "A", Cases: 50, Population: 10000},
			{Label: "B", Cases: 25, Population: 10000},
		}, "B", DefaultScale)
		require.NoError(t, err)

		data, err := json.Marshal(rows)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"ratio":2`)
		assert.Contains(t, string(data), `"ratio":1`)
	})
}
