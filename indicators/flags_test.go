package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSmallNumber(t *testing.T) {
	tests := []struct {
		name      string
		count     float64
		threshold int
		expected  bool
	}{
		{"below threshold", 3, DefaultThreshold, true},
		{"just below", 4, DefaultThreshold, true},
		{"at threshold", 5, DefaultThreshold, false},
		{"above threshold", 10, DefaultThreshold, false},
		{"custom threshold below", 7, 10, true},
		{"custom threshold at", 10, 10, false},
		{"zero", 0, DefaultThreshold, true},
		{"zero with threshold one", 0, 1, true},
		{"fractional", 4.99, DefaultThreshold, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag, err := FlagSmallNumber(tt.count, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flag)
		})
	}
}

func TestFlagSmallNumbers(t *testing.T) {
	flags, err := FlagSmallNumbers([]float64{2, 4, 8, 12, 18}, 5)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false, false}, flags)

	flags, err = FlagSmallNumbers([]float64{2, 5, 10, 3}, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true}, flags)

	flags, err = FlagSmallNumbers([]float64{}, DefaultThreshold)
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestFlagSmallNumbersInvalid(t *testing.T) {
	_, err := FlagSmallNumbers([]float64{2, -1}, 5)
	require.ErrorIs(t, err, ErrDomain)
	assert.Contains(t, err.Error(), "counts[1]")

	_, err = FlagSmallNumbers([]float64{2}, 0)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = FlagSmallNumber(3, -5)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = FlagSmallNumber(-3, 5)
	assert.ErrorIs(t, err, ErrDomain)
}
