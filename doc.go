// Package goepi computes public-health indicators from case and population
// counts.
//
// The formulas live in the indicators package and take plain numbers: crude
// rates, exact Poisson confidence intervals, rolling means over series with
// missing values, directly age-standardized rates, rate ratios and
// differences, and small-number flags. Invalid input is reported as an
// *indicators.DomainError before any arithmetic runs.
//
// # Quick Start
//
// Crude rate per 100,000 with a 95% interval:
//
//	est, err := indicators.PoissonRateEstimate(150, 50000, indicators.DefaultScale, indicators.DefaultAlpha)
//	// est.Rate == 300, est.CI ≈ [253.9, 352.0]
//
// Age-standardized rate over three strata:
//
//	rate, err := indicators.DirectAgeStandardizedRate(
//		[]float64{10, 20, 50},
//		[]float64{10000, 8000, 5000},
//		[]float64{0.4, 0.35, 0.25},
//		indicators.DefaultScale,
//	) // 377.5
//
// Strata with zero population are dropped together with their weight; the
// remaining weights are not rescaled. StandardizeByAge reports which strata
// were dropped.
//
// # Packages
//
//   - indicators: the indicator formulas and their batch forms
//   - stats: chi-square quantile and CDF
//   - timeseries: series with NaN as the missing marker, CSV loading
//   - dataset: case/population tables from CSV and XLSX
//   - report: text, CSV, JSON and XLSX tables of results
//
// The goepi command in cmd/goepi wires these together.
package goepi
