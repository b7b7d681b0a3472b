package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquaredQuantile returns the value x such that P(X <= x) = p for a
// chi-squared distribution with df degrees of freedom.
// Returns NaN when p is outside [0, 1] or df is not positive.
func ChiSquaredQuantile(p, df float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 || !(df > 0) || math.IsInf(df, 0) {
		return math.NaN()
	}
	if p == 0 {
		return 0
	}
	if p == 1 {
		return math.Inf(1)
	}
	return distuv.ChiSquared{K: df}.Quantile(p)
}

// ChiSquaredCDF calculates the CDF of the chi-squared distribution.
func ChiSquaredCDF(x, df float64) float64 {
	if math.IsNaN(x) || !(df > 0) {
		return math.NaN()
	}
	if x <= 0 {
		return 0
	}
	return distuv.ChiSquared{K: df}.CDF(x)
}

// PoissonCountBounds returns the exact two-sided (1-alpha) bounds for the
// mean of a Poisson count n. n is rounded half to even before use.
// The lower bound is 0 when n is 0; the upper bound is always positive.
func PoissonCountBounds(n, alpha float64) (lower, upper float64) {
	if math.IsNaN(n) || n < 0 || !(alpha > 0 && alpha < 1) {
		return math.NaN(), math.NaN()
	}
	k := math.RoundToEven(n)
	if k > 0 {
		lower = ChiSquaredQuantile(alpha/2, 2*k) / 2
	}
	upper = ChiSquaredQuantile(1-alpha/2, 2*(k+1)) / 2
	return lower, upper
}
