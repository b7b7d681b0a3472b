package indicators

import (
	"github.com/sartorproj/goepi/stats"
)

// DefaultAlpha gives 95% confidence intervals.
const DefaultAlpha = 0.05

// ConfidenceInterval is a closed interval in the same units as its rate.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Contains reports whether x lies within the interval.
func (ci ConfidenceInterval) Contains(x float64) bool {
	return ci.Lower <= x && x <= ci.Upper
}

// RateEstimate is a crude rate with its exact Poisson interval.
type RateEstimate struct {
	Rate float64            `json:"rate"`
	CI   ConfidenceInterval `json:"ci"`
}

// PoissonRateCI calculates the exact (1-alpha) confidence interval for a rate,
// treating cases as a Poisson count.
//
// The bounds come from the chi-squared relationship:
//
//	lower = χ²(alpha/2; 2n) / 2 / population * scale     (0 when n = 0)
//	upper = χ²(1-alpha/2; 2(n+1)) / 2 / population * scale
//
// where n is cases rounded half to even. Rounding applies to the interval
// only; RatePer uses cases unrounded. At n = 0 the upper bound is still
// positive.
//
// Reference: Ulm K. A simple method to calculate the confidence interval of
// a standardized mortality ratio. Am J Epidemiol. 1990;131(2):373-375.
func PoissonRateCI(cases, population, scale, alpha float64) (ConfidenceInterval, error) {
	const op = "PoissonRateCI"
	if err := checkCases(op, "cases", cases); err != nil {
		return ConfidenceInterval{}, err
	}
	if err := checkPopulation(op, "population", population); err != nil {
		return ConfidenceInterval{}, err
	}
	if err := checkScale(op, scale); err != nil {
		return ConfidenceInterval{}, err
	}
	if err := checkAlpha(op, alpha); err != nil {
		return ConfidenceInterval{}, err
	}

	lowerCount, upperCount := stats.PoissonCountBounds(cases, alpha)
	ci := ConfidenceInterval{
		Lower: lowerCount / population * scale,
		Upper: upperCount / population * scale,
	}
	warnNonFinite(op, ci.Upper)
	return ci, nil
}

// PoissonRateEstimate returns the crude rate together with its exact interval.
func PoissonRateEstimate(cases, population, scale, alpha float64) (RateEstimate, error) {
	ci, err := PoissonRateCI(cases, population, scale, alpha)
	if err != nil {
		return RateEstimate{}, err
	}
	rate, err := RatePer(cases, population, scale)
	if err != nil {
		return RateEstimate{}, err
	}
	return RateEstimate{Rate: rate, CI: ci}, nil
}
