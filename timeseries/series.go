package timeseries

import (
	"errors"
	"math"
	"time"

	"github.com/sartorproj/goepi/indicators"
)

// Series represents an evenly spaced series. Missing observations are NaN.
// Timestamps are optional labels; positions alone define spacing.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values without timestamps.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series, missing positions included.
func (s *Series) Len() int {
	return len(s.Values)
}

// Count returns the number of non-missing values.
func (s *Series) Count() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Missing returns the positions holding NaN.
func (s *Series) Missing() []int {
	var idx []int
	for i, v := range s.Values {
		if math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasTimestamps reports whether every value has a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) > 0 && len(s.Timestamps) == len(s.Values)
}

// Sum adds the non-missing values.
func (s *Series) Sum() float64 {
	sum := 0.0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// Mean calculates the mean of the non-missing values.
// Returns NaN when every value is missing.
func (s *Series) Mean() float64 {
	n := s.Count()
	if n == 0 {
		return math.NaN()
	}
	return s.Sum() / float64(n)
}

// Min returns the smallest non-missing value.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if !math.IsNaN(v) && (math.IsNaN(min) || v < min) {
			min = v
		}
	}
	return min
}

// Max returns the largest non-missing value.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if !math.IsNaN(v) && (math.IsNaN(max) || v > max) {
			max = v
		}
	}
	return max
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// RollingMean returns the moving average of the series as a new series of
// the same length, keeping the timestamps. See indicators.RollingMean.
func (s *Series) RollingMean(window int, opts ...indicators.RollingOption) (*Series, error) {
	values, err := indicators.RollingMean(s.Values, window, opts...)
	if err != nil {
		return nil, err
	}

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name + "_rolling_mean",
	}, nil
}
