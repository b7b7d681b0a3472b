package indicators

import "fmt"

// DefaultScale expresses rates per 100,000 population.
const DefaultScale = 100_000.0

// RateInput is one group's observed count and population at risk.
type RateInput struct {
	Label      string  `json:"label"`
	Cases      float64 `json:"cases"`
	Population float64 `json:"population"`
}

// Rate returns the group's crude rate per scale.
func (in RateInput) Rate(scale float64) (float64, error) {
	return RatePer(in.Cases, in.Population, scale)
}

// RatePer calculates the crude rate cases/population*scale.
//
// Fractional cases (pooled or averaged counts) are used as given.
// Returns a *DomainError when population <= 0, cases < 0 or scale <= 0.
//
//	RatePer(150, 50000, DefaultScale) // 300
//	RatePer(25, 10000, 1000)          // 2.5
func RatePer(cases, population, scale float64) (float64, error) {
	const op = "RatePer"
	if err := checkScale(op, scale); err != nil {
		return 0, err
	}
	if err := checkCases(op, "cases", cases); err != nil {
		return 0, err
	}
	if err := checkPopulation(op, "population", population); err != nil {
		return 0, err
	}

	rate := cases / population * scale
	warnNonFinite(op, rate)
	return rate, nil
}

// RatesPer applies RatePer element-wise to parallel slices.
// All inputs are checked before any rate is computed.
func RatesPer(cases, populations []float64, scale float64) ([]float64, error) {
	const op = "RatesPer"
	if err := checkScale(op, scale); err != nil {
		return nil, err
	}
	if err := checkSameLength(op, field{"cases", cases}, field{"populations", populations}); err != nil {
		return nil, err
	}
	if err := checkNonNegative(op, field{"cases", cases}); err != nil {
		return nil, err
	}
	for i, p := range populations {
		if !(p > 0) {
			return nil, domainError(op, fmt.Sprintf("populations[%d]", i), p, "must be positive")
		}
	}

	rates := make([]float64, len(cases))
	for i := range cases {
		rates[i] = cases[i] / populations[i] * scale
		warnNonFinite(op, rates[i])
	}
	return rates, nil
}
