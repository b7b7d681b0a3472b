// Package dataset loads tabular case and population records from CSV and
// XLSX files and groups them into indicator inputs.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sartorproj/goepi/indicators"
)

// Record is one row of a case/population table.
type Record struct {
	Label      string  `json:"label"`
	Group      string  `json:"group"`
	AgeGroup   string  `json:"age_group"`
	Cases      float64 `json:"cases" validate:"gte=0"`
	Population float64 `json:"population" validate:"gte=0"`
	Weight     float64 `json:"weight" validate:"gte=0"`
}

// Columns names the header of each record field. Empty names are columns
// that are not read. The text columns (Label, Group, AgeGroup) may be absent
// from the file; a named numeric column (Cases, Population, Weight) must be
// present and filled in on every row.
type Columns struct {
	Label      string
	Group      string
	AgeGroup   string
	Cases      string
	Population string
	Weight     string
}

// DefaultColumns returns the header names used by the bundled examples.
// It reads every field, as age standardization needs.
func DefaultColumns() Columns {
	return Columns{
		Label:      "label",
		Group:      "group",
		AgeGroup:   "age_group",
		Cases:      "cases",
		Population: "population",
		Weight:     "weight",
	}
}

// RateColumns is DefaultColumns without the weight column, for crude rates
// and comparisons.
func RateColumns() Columns {
	cols := DefaultColumns()
	cols.Weight = ""
	return cols
}

// CountColumns reads labels and case counts only.
func CountColumns() Columns {
	cols := RateColumns()
	cols.Population = ""
	return cols
}

// aliases are tried when a configured header is absent.
var aliases = map[string][]string{
	"label":      {"region", "name", "area", "year"},
	"age_group":  {"age", "age_band"},
	"population": {"pop", "population_at_risk"},
	"weight":     {"std_weight", "standard_weight", "std_pop"},
	"cases":      {"count", "events", "deaths"},
}

var validate = validator.New()

type columnIndex struct {
	label, group, ageGroup, cases, population, weight int
}

func findColumn(header []string, name string) int {
	if name == "" {
		return -1
	}
	candidates := append([]string{name}, aliases[name]...)
	for _, c := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), c) {
				return i
			}
		}
	}
	return -1
}

func indexColumns(header []string, cols Columns) (columnIndex, error) {
	idx := columnIndex{
		label:      findColumn(header, cols.Label),
		group:      findColumn(header, cols.Group),
		ageGroup:   findColumn(header, cols.AgeGroup),
		cases:      findColumn(header, cols.Cases),
		population: findColumn(header, cols.Population),
		weight:     findColumn(header, cols.Weight),
	}
	if idx.cases < 0 {
		return idx, fmt.Errorf("cases column %q not found", cols.Cases)
	}
	if cols.Population != "" && idx.population < 0 {
		return idx, fmt.Errorf("population column %q not found", cols.Population)
	}
	if cols.Weight != "" && idx.weight < 0 {
		return idx, fmt.Errorf("weight column %q not found", cols.Weight)
	}
	return idx, nil
}

// parseRows turns a header and data rows into validated records.
// Row numbers in errors count data rows from 1.
func parseRows(header []string, rows [][]string, cols Columns) ([]Record, error) {
	idx, err := indexColumns(header, cols)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}
		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.Label == "" {
			rec.Label = firstNonEmpty(rec.AgeGroup, rec.Group, strconv.Itoa(i+1))
		}
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, describe(err))
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("no data rows found")
	}
	return records, nil
}

func parseRecord(row []string, idx columnIndex) (Record, error) {
	var rec Record
	var err error
	rec.Label = cell(row, idx.label)
	rec.Group = cell(row, idx.group)
	rec.AgeGroup = cell(row, idx.ageGroup)
	if rec.Cases, err = number(row, idx.cases, "cases"); err != nil {
		return rec, err
	}
	if rec.Population, err = number(row, idx.population, "population"); err != nil {
		return rec, err
	}
	if rec.Weight, err = number(row, idx.weight, "weight"); err != nil {
		return rec, err
	}
	return rec, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(row[i], "\""))
}

// number parses a numeric cell. Unread columns (i < 0) give 0; a blank
// cell in a read column is an error.
func number(row []string, i int, name string) (float64, error) {
	if i < 0 {
		return 0, nil
	}
	s := strings.ReplaceAll(cell(row, i), ",", "")
	if s == "" {
		return 0, fmt.Errorf("%s is empty", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s cannot be negative, got %v", strings.ToLower(fe.Field()), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// RateInputs converts records to crude rate inputs, in order.
func RateInputs(records []Record) []indicators.RateInput {
	out := make([]indicators.RateInput, len(records))
	for i, r := range records {
		out[i] = indicators.RateInput{Label: r.Label, Cases: r.Cases, Population: r.Population}
	}
	return out
}

// Counts returns the cases column.
func Counts(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Cases
	}
	return out
}

// Labels returns the label column.
func Labels(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

// StratifiedGroup is the age strata of one population, in file order.
type StratifiedGroup struct {
	Name   string
	Strata []indicators.AgeStratum
}

// AgeStrata groups records by Group, keeping the order in which groups and
// strata first appear. Records without a group form a single unnamed group.
// Each stratum is labelled by AgeGroup, falling back to Label.
func AgeStrata(records []Record) []StratifiedGroup {
	var groups []StratifiedGroup
	pos := map[string]int{}
	for _, r := range records {
		i, ok := pos[r.Group]
		if !ok {
			i = len(groups)
			pos[r.Group] = i
			groups = append(groups, StratifiedGroup{Name: r.Group})
		}
		groups[i].Strata = append(groups[i].Strata, indicators.AgeStratum{
			Label:      firstNonEmpty(r.AgeGroup, r.Label),
			Cases:      r.Cases,
			Population: r.Population,
			Weight:     r.Weight,
		})
	}
	return groups
}
