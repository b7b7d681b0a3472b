// Package stats provides the distribution functions the indicator formulas
// depend on.
//
// The exact Poisson confidence interval for a rate is obtained from
// chi-squared quantiles (the chi-square/gamma relationship), so this package
// exposes the chi-squared quantile and CDF with input checks that return NaN
// instead of panicking.
//
// # Chi-squared Distribution
//
//	// 97.5th percentile with 2 degrees of freedom
//	q := stats.ChiSquaredQuantile(0.975, 2) // 7.3778
//
//	// Probability that X <= 3.84 with 1 degree of freedom
//	p := stats.ChiSquaredCDF(3.84, 1) // ~0.95
//
// # Poisson Count Bounds
//
// The exact bounds of a Poisson mean for an observed count n:
//
//	lower, upper := stats.PoissonCountBounds(150, 0.05)
//	// lower ≈ 126.96, upper ≈ 176.02
package stats
