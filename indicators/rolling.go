package indicators

import "math"

// RollingOption configures RollingMean.
type RollingOption func(*rollingConfig)

type rollingConfig struct {
	minPeriods    int
	minPeriodsSet bool
	centered      bool
}

// WithMinPeriods sets the number of non-missing values a window needs to
// produce an output. Defaults to the window size.
func WithMinPeriods(n int) RollingOption {
	return func(c *rollingConfig) {
		c.minPeriods = n
		c.minPeriodsSet = true
	}
}

// Centered places each window around its position instead of ending at it.
func Centered() RollingOption {
	return func(c *rollingConfig) {
		c.centered = true
	}
}

// WindowBounds returns how many positions before and after t a window of the
// given size covers.
//
// A trailing window covers t-window+1..t. A centered window covers window/2
// positions before t and window-1-window/2 after it, which is symmetric for
// odd sizes and leans one position back for even sizes.
func WindowBounds(window int, centered bool) (before, after int) {
	if !centered {
		return window - 1, 0
	}
	before = window / 2
	return before, window - 1 - before
}

// RollingMean calculates the moving average of an evenly spaced series.
//
// Missing values are NaN. They are skipped in both the sum and the count of
// a window; a position whose window holds fewer than minPeriods non-missing
// values yields NaN. Windows are truncated at the series boundaries, so edge
// positions produce values only when minPeriods allows partial windows.
// The output has the same length as values, and values is not modified.
//
//	RollingMean([]float64{1, 2, 3, 4, 5}, 3)
//	// [NaN NaN 2 3 4]
//	RollingMean([]float64{1, 2, 3, 4, 5}, 3, WithMinPeriods(1))
//	// [1 1.5 2 3 4]
//	RollingMean([]float64{1, 2, 3, 4, 5}, 3, WithMinPeriods(1), Centered())
//	// [1.5 2 3 4 4.5]
func RollingMean(values []float64, window int, opts ...RollingOption) ([]float64, error) {
	const op = "RollingMean"
	var cfg rollingConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if window < 1 {
		return nil, domainError(op, "window", window, "must be a positive integer")
	}
	if !cfg.minPeriodsSet {
		cfg.minPeriods = window
	}
	if cfg.minPeriods < 1 || cfg.minPeriods > window {
		return nil, domainError(op, "minPeriods", cfg.minPeriods, "must be between 1 and window")
	}

	before, after := WindowBounds(window, cfg.centered)
	n := len(values)
	result := make([]float64, n)

	for t := 0; t < n; t++ {
		lo, hi := max(0, t-before), min(n-1, t+after)
		sum, count := 0.0, 0
		for i := lo; i <= hi; i++ {
			if math.IsNaN(values[i]) {
				continue
			}
			sum += values[i]
			count++
		}

		if count < cfg.minPeriods {
			result[t] = math.NaN()
			continue
		}
		result[t] = sum / float64(count)
	}

	return result, nil
}
