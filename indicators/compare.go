package indicators

import (
	"encoding/json"
	"math"
)

// RateRatio calculates rate(A) / rate(B), with B as the reference group.
//
// When both rates are zero the groups do not differ and 1 is returned.
// A zero reference rate with a non-zero rate in A has no finite ratio and
// returns a *DomainError. Invalid populations fail as in RatePer.
//
//	RateRatio(50, 10000, 25, 10000, DefaultScale) // 2
//	RateRatio(30, 15000, 40, 10000, DefaultScale) // 0.5
func RateRatio(casesA, popA, casesB, popB, scale float64) (float64, error) {
	rateA, err := RatePer(casesA, popA, scale)
	if err != nil {
		return 0, err
	}
	rateB, err := RatePer(casesB, popB, scale)
	if err != nil {
		return 0, err
	}

	if rateB == 0 {
		if rateA == 0 {
			return 1, nil
		}
		return 0, domainError("RateRatio", "", nil, "cannot compute rate ratio when reference rate is zero")
	}
	return rateA / rateB, nil
}

// RateDifference calculates rate(A) - rate(B) per scale.
// Positive values are excess cases in group A.
func RateDifference(casesA, popA, casesB, popB, scale float64) (float64, error) {
	rateA, err := RatePer(casesA, popA, scale)
	if err != nil {
		return 0, err
	}
	rateB, err := RatePer(casesB, popB, scale)
	if err != nil {
		return 0, err
	}
	return rateA - rateB, nil
}

// Comparison holds both comparative measures of group A against reference B.
type Comparison struct {
	LabelA     string  `json:"label_a"`
	LabelB     string  `json:"label_b"`
	RateA      float64 `json:"rate_a"`
	RateB      float64 `json:"rate_b"`
	Difference float64 `json:"difference"`
	// Ratio is NaN when RatioDefined is false. JSON encodes it as null.
	Ratio        float64 `json:"-"`
	RatioDefined bool    `json:"ratio_defined"`
}

// Compare computes rate ratio and difference for a against reference b.
// Unlike RateRatio, a zero reference rate is not an error here: the ratio is
// marked undefined so a table of comparisons can still be produced.
func Compare(a, b RateInput, scale float64) (Comparison, error) {
	rateA, err := a.Rate(scale)
	if err != nil {
		return Comparison{}, err
	}
	rateB, err := b.Rate(scale)
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		LabelA:     a.Label,
		LabelB:     b.Label,
		RateA:      rateA,
		RateB:      rateB,
		Difference: rateA - rateB,
		Ratio:      math.NaN(),
	}
	switch {
	case rateB != 0:
		c.Ratio, c.RatioDefined = rateA/rateB, true
	case rateA == 0:
		c.Ratio, c.RatioDefined = 1, true
	}
	return c, nil
}

// comparisonJSON carries Ratio as a pointer so an undefined ratio is null.
type comparisonJSON struct {
	comparisonFields
	Ratio *float64 `json:"ratio"`
}

type comparisonFields Comparison

// MarshalJSON writes ratio as a number, or null when it is undefined.
func (c Comparison) MarshalJSON() ([]byte, error) {
	out := comparisonJSON{comparisonFields: comparisonFields(c)}
	if c.RatioDefined {
		r := c.Ratio
		out.Ratio = &r
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON. A null or absent
// ratio decodes as NaN.
func (c *Comparison) UnmarshalJSON(data []byte) error {
	var in comparisonJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Comparison(in.comparisonFields)
	c.Ratio = math.NaN()
	if in.Ratio != nil {
		c.Ratio = *in.Ratio
	}
	return nil
}
