package indicators

import (
	"fmt"
	"log/slog"
)

// AgeStratum is one age group's count, population and standard weight.
type AgeStratum struct {
	Label      string
	Cases      float64
	Population float64
	Weight     float64
}

// AgeStandardizedResult is a directly age-standardized rate with the
// bookkeeping of strata that could not contribute.
type AgeStandardizedResult struct {
	Rate float64 `json:"rate"`
	// ExcludedStrata holds indices of strata with zero population.
	ExcludedStrata []int `json:"excluded_strata,omitempty"`
	// ExcludedCases is the number of cases recorded in excluded strata.
	ExcludedCases float64 `json:"excluded_cases"`
	// AppliedWeight is the normalized weight that entered the sum. It is
	// below 1 whenever a stratum was excluded.
	AppliedWeight float64  `json:"applied_weight"`
	Warnings      []string `json:"warnings,omitempty"`
}

// StandardizeByAge computes a directly age-standardized rate:
//
//	sum_i (counts[i] / pops[i]) * w[i] * scale
//
// where w is weights normalized to sum to 1 over all strata. Weights that
// already sum to 1 (within WeightSumTolerance) are used as given; other
// weights are rescaled, never rejected.
//
// A stratum with zero population is left out of the sum and its normalized
// weight is dropped, not redistributed over the remaining strata, so the
// result can be lower than a rate standardized over the included strata
// only. Cases recorded in such a stratum are a data inconsistency; they are
// reported in Warnings and ExcludedCases but do not fail the call.
//
// The result is a comparative index for populations with different age
// structures, not the observed rate of any real population.
func StandardizeByAge(counts, pops, weights []float64, scale float64) (*AgeStandardizedResult, error) {
	const op = "DirectAgeStandardizedRate"
	if err := checkScale(op, scale); err != nil {
		return nil, err
	}
	if err := checkSameLength(op,
		field{"counts", counts},
		field{"populations", pops},
		field{"weights", weights},
	); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, domainError(op, "", nil, "at least one age stratum is required")
	}
	if err := checkNonNegative(op, field{"counts", counts}); err != nil {
		return nil, err
	}
	if err := checkNonNegative(op, field{"populations", pops}); err != nil {
		return nil, err
	}
	w, err := normalizeWeights(op, weights)
	if err != nil {
		return nil, err
	}

	result := &AgeStandardizedResult{}
	sum := 0.0
	for i := range counts {
		if pops[i] == 0 {
			result.ExcludedStrata = append(result.ExcludedStrata, i)
			result.ExcludedCases += counts[i]
			continue
		}
		sum += counts[i] / pops[i] * w[i]
		result.AppliedWeight += w[i]
	}
	result.Rate = sum * scale

	if result.ExcludedCases > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"excluding %g cases in age groups with zero population", result.ExcludedCases))
	}
	warnNonFinite(op, result.Rate)
	return result, nil
}

// DirectAgeStandardizedRate returns the rate computed by StandardizeByAge and
// logs its warnings through the default slog logger.
//
//	counts := []float64{10, 20, 50}
//	pops := []float64{10000, 8000, 5000}
//	weights := []float64{0.4, 0.35, 0.25}
//	rate, _ := DirectAgeStandardizedRate(counts, pops, weights, DefaultScale) // 377.5
func DirectAgeStandardizedRate(counts, pops, weights []float64, scale float64) (float64, error) {
	result, err := StandardizeByAge(counts, pops, weights, scale)
	if err != nil {
		return 0, err
	}
	for _, w := range result.Warnings {
		slog.Default().Warn(w,
			slog.Any("excluded_strata", result.ExcludedStrata),
			slog.Float64("excluded_cases", result.ExcludedCases),
		)
	}
	return result.Rate, nil
}

// StandardizeStrata runs StandardizeByAge over stratum records.
func StandardizeStrata(strata []AgeStratum, scale float64) (*AgeStandardizedResult, error) {
	counts := make([]float64, len(strata))
	pops := make([]float64, len(strata))
	weights := make([]float64, len(strata))
	for i, s := range strata {
		counts[i] = s.Cases
		pops[i] = s.Population
		weights[i] = s.Weight
	}
	return StandardizeByAge(counts, pops, weights, scale)
}
