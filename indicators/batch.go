package indicators

import "fmt"

// TableOptions holds the per-call parameters applied to every row of a table.
type TableOptions struct {
	Scale     float64
	Alpha     float64
	Threshold int
}

// DefaultTableOptions returns per-100,000 rates, 95% intervals and a
// small-number threshold of 5.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Scale:     DefaultScale,
		Alpha:     DefaultAlpha,
		Threshold: DefaultThreshold,
	}
}

// RateRow is one row of a crude rate table.
type RateRow struct {
	Label       string             `json:"label"`
	Cases       float64            `json:"cases"`
	Population  float64            `json:"population"`
	Rate        float64            `json:"rate"`
	CI          ConfidenceInterval `json:"ci"`
	SmallNumber bool               `json:"small_number"`
}

// CrudeRateTable computes rate, exact interval and small-number flag for each
// row independently. The first invalid row aborts the table with an error
// naming the row and wrapping its *DomainError.
func CrudeRateTable(rows []RateInput, opts TableOptions) ([]RateRow, error) {
	out := make([]RateRow, 0, len(rows))
	for i, row := range rows {
		est, err := PoissonRateEstimate(row.Cases, row.Population, opts.Scale, opts.Alpha)
		if err != nil {
			return nil, rowError(i, row.Label, err)
		}
		small, err := FlagSmallNumber(row.Cases, opts.Threshold)
		if err != nil {
			return nil, rowError(i, row.Label, err)
		}
		out = append(out, RateRow{
			Label:       row.Label,
			Cases:       row.Cases,
			Population:  row.Population,
			Rate:        est.Rate,
			CI:          est.CI,
			SmallNumber: small,
		})
	}
	return out, nil
}

// CompareTable compares every row against the row labelled reference.
// The reference row is compared with itself and appears in the output.
func CompareTable(rows []RateInput, reference string, scale float64) ([]Comparison, error) {
	ref := -1
	for i, row := range rows {
		if row.Label == reference {
			ref = i
			break
		}
	}
	if ref < 0 {
		return nil, domainError("CompareTable", "reference", reference, "not found among rows")
	}

	out := make([]Comparison, 0, len(rows))
	for i, row := range rows {
		c, err := Compare(row, rows[ref], scale)
		if err != nil {
			return nil, rowError(i, row.Label, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func rowError(i int, label string, err error) error {
	if label == "" {
		return fmt.Errorf("row %d: %w", i+1, err)
	}
	return fmt.Errorf("row %d (%s): %w", i+1, label, err)
}
