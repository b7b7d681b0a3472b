package indicators

import (
	"fmt"
	"log/slog"
	"math"
)

// WeightSumTolerance is how far a weight sum may be from 1 and still be
// used without rescaling.
const WeightSumTolerance = 1e-9

type field struct {
	name   string
	values []float64
}

func checkScale(op string, scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return domainError(op, "scale", scale, "must be positive")
	}
	return nil
}

func checkCases(op, name string, cases float64) error {
	if math.IsNaN(cases) {
		return domainError(op, name, cases, "must be a number")
	}
	if math.IsInf(cases, 0) {
		return domainError(op, name, cases, "must be finite")
	}
	if cases < 0 {
		return domainError(op, name, cases, "must be non-negative")
	}
	return nil
}

func checkPopulation(op, name string, population float64) error {
	if !(population > 0) {
		return domainError(op, name, population, "must be positive")
	}
	return nil
}

func checkAlpha(op string, alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return domainError(op, "alpha", alpha, "must be in (0, 1)")
	}
	return nil
}

func checkSameLength(op string, fields ...field) error {
	if len(fields) == 0 {
		return nil
	}
	n := len(fields[0].values)
	for _, f := range fields[1:] {
		if len(f.values) != n {
			return domainError(op, "", nil, fmt.Sprintf(
				"all inputs must have the same length: %s has %d, %s has %d",
				fields[0].name, n, f.name, len(f.values)))
		}
	}
	return nil
}

func checkNonNegative(op string, f field) error {
	for i, v := range f.values {
		if math.IsNaN(v) {
			return domainError(op, fmt.Sprintf("%s[%d]", f.name, i), v, "must be a number")
		}
		if v < 0 {
			return domainError(op, fmt.Sprintf("%s[%d]", f.name, i), v, "cannot be negative")
		}
	}
	return nil
}

// NormalizeWeights returns weights rescaled to sum to 1. Weights whose sum
// is already within WeightSumTolerance of 1 are returned as a copy. The input
// is never modified.
func NormalizeWeights(weights []float64) ([]float64, error) {
	return normalizeWeights("NormalizeWeights", weights)
}

func normalizeWeights(op string, weights []float64) ([]float64, error) {
	if err := checkNonNegative(op, field{"weights", weights}); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if !(sum > 0) || math.IsInf(sum, 1) {
		return nil, domainError(op, "weights", sum, "must sum to a positive value")
	}

	out := make([]float64, len(weights))
	if math.Abs(sum-1) <= WeightSumTolerance {
		copy(out, weights)
		return out, nil
	}
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}

// warnNonFinite logs results that overflowed to Inf or NaN from extreme
// but valid inputs. Such results are returned, not rejected.
func warnNonFinite(op string, v float64) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		slog.Default().Warn("result is not finite, likely due to extreme inputs",
			slog.String("op", op),
			slog.Float64("value", v),
		)
	}
}
