// Package indicators computes standard epidemiological indicators from
// case and population counts.
//
// Every function is pure: its result depends only on its arguments, nothing
// is cached, and all functions are safe for concurrent use. Parameters that
// have conventional defaults (DefaultScale, DefaultAlpha, DefaultThreshold)
// are passed explicitly on each call.
//
// # Crude Rates and Intervals
//
//	rate, err := indicators.RatePer(150, 50000, indicators.DefaultScale)
//	// rate = 300 per 100,000
//
//	ci, err := indicators.PoissonRateCI(150, 50000, indicators.DefaultScale, indicators.DefaultAlpha)
//	// ci.Lower ≈ 253.9, ci.Upper ≈ 352.0
//
// # Rolling Averages
//
// Missing observations are NaN and are skipped:
//
//	smoothed, err := indicators.RollingMean(weekly, 7, indicators.WithMinPeriods(4))
//	centered, err := indicators.RollingMean(weekly, 7, indicators.Centered())
//
// # Age Standardization
//
//	rate, err := indicators.DirectAgeStandardizedRate(counts, pops, stdWeights, indicators.DefaultScale)
//
// Strata with zero population are dropped together with their share of the
// standard weight; the weight is not redistributed. Use StandardizeByAge to
// see which strata were dropped.
//
// # Comparisons
//
//	rr, err := indicators.RateRatio(50, 10000, 25, 10000, indicators.DefaultScale) // 2
//	rd, err := indicators.RateDifference(50, 10000, 25, 10000, indicators.DefaultScale) // 250
//
// No confidence interval is computed for ratios or differences.
//
// # Small Numbers
//
//	flags, err := indicators.FlagSmallNumbers([]float64{2, 4, 8}, indicators.DefaultThreshold)
//	// [true true false]
//
// # Errors
//
// All invalid input is reported as a *DomainError, which matches ErrDomain:
//
//	if errors.Is(err, indicators.ErrDomain) {
//	    var de *indicators.DomainError
//	    errors.As(err, &de)
//	    log.Printf("bad %s: %s", de.Field, de.Msg)
//	}
package indicators
