package indicators

import "fmt"

// DefaultThreshold is the count below which an estimate is flagged.
const DefaultThreshold = 5

// FlagSmallNumber reports whether count is below threshold, marking a rate
// built on it as statistically unstable. Zero is always flagged.
//
// This is a caution flag, not a suppression rule. Common cut-offs are 5
// (very unstable), 10 (interpret with caution) and 20 (wide intervals).
func FlagSmallNumber(count float64, threshold int) (bool, error) {
	const op = "FlagSmallNumbers"
	if threshold <= 0 {
		return false, domainError(op, "threshold", threshold, "must be positive")
	}
	if err := checkCases(op, "count", count); err != nil {
		return false, err
	}
	return count < float64(threshold), nil
}

// FlagSmallNumbers applies FlagSmallNumber element-wise. The result has one
// flag per count, in order.
//
//	FlagSmallNumbers([]float64{2, 4, 8, 12, 18}, 5) // [true true false false false]
func FlagSmallNumbers(counts []float64, threshold int) ([]bool, error) {
	const op = "FlagSmallNumbers"
	if threshold <= 0 {
		return nil, domainError(op, "threshold", threshold, "must be positive")
	}
	for i, c := range counts {
		if err := checkCases(op, fmt.Sprintf("counts[%d]", i), c); err != nil {
			return nil, err
		}
	}

	flags := make([]bool, len(counts))
	for i, c := range counts {
		flags[i] = c < float64(threshold)
	}
	return flags, nil
}
