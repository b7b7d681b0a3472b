// Package main prints the worked examples of the indicator functions and
// exports them as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/sartorproj/goepi/indicators"
	"github.com/sartorproj/goepi/internal/logger"
	"github.com/sartorproj/goepi/report"
	"github.com/sartorproj/goepi/timeseries"
)

const outputFile = "indicator_examples.json"

// Example holds one worked example for JSON export
type Example struct {
	Name    string         `json:"name"`
	Inputs  map[string]any `json:"inputs"`
	Outputs map[string]any `json:"outputs"`
}

// OutputData holds all examples
type OutputData struct {
	Examples []Example `json:"examples"`
}

func main() {
	logger.Init("info", "text", os.Stderr)

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("goepi worked examples")
	fmt.Println(strings.Repeat("=", 80))

	output := OutputData{}
	steps := []func() (*Example, error){
		crudeRates,
		ageStandardized,
		rollingAverage,
		comparison,
		smallNumbers,
	}
	for _, step := range steps {
		ex, err := step()
		if err != nil {
			slog.Error("example failed", "error", err)
			continue
		}
		output.Examples = append(output.Examples, *ex)
	}

	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		slog.Error("failed to encode results", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		slog.Error("failed to write results", "path", outputFile, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d examples to %s\n", len(output.Examples), outputFile)
}

func section(title string) {
	fmt.Printf("\n%s\n%s\n%s\n", strings.Repeat("-", 80), title, strings.Repeat("-", 80))
}

func show(t *report.Table) {
	if err := report.WriteText(os.Stdout, t); err != nil {
		slog.Error("failed to print table", "error", err)
	}
}

// crudeRates: regional rates with exact intervals
func crudeRates() (*Example, error) {
	section("Crude rates with 95% Poisson intervals")

	rows := []indicators.RateInput{
		{Label: "Region A", Cases: 150, Population: 50000},
		{Label: "Region B", Cases: 5, Population: 10000},
		{Label: "Region C", Cases: 100, Population: 10000},
		{Label: "Region D", Cases: 0, Population: 10000},
	}
	opts := indicators.DefaultTableOptions()
	table, err := indicators.CrudeRateTable(rows, opts)
	if err != nil {
		return nil, err
	}
	show(report.CrudeRates(table, opts, 1))

	return &Example{
		Name:    "crude_rates",
		Inputs:  map[string]any{"rows": rows, "scale": opts.Scale, "alpha": opts.Alpha},
		Outputs: map[string]any{"rows": table},
	}, nil
}

// ageStandardized: three and five stratum examples
func ageStandardized() (*Example, error) {
	section("Direct age standardization")

	counts := []float64{12, 35, 48, 62, 85}
	pops := []float64{15000, 22000, 18000, 12000, 8000}
	weights := []float64{0.18, 0.40, 0.25, 0.10, 0.07}
	five, err := indicators.StandardizeByAge(counts, pops, weights, indicators.DefaultScale)
	if err != nil {
		return nil, err
	}

	three, err := indicators.StandardizeStrata([]indicators.AgeStratum{
		{Label: "0-39", Cases: 10, Population: 10000, Weight: 0.4},
		{Label: "40-64", Cases: 20, Population: 8000, Weight: 0.35},
		{Label: "65+", Cases: 50, Population: 5000, Weight: 0.25},
	}, indicators.DefaultScale)
	if err != nil {
		return nil, err
	}

	// Last stratum has no population; its weight is dropped.
	dropped, err := indicators.StandardizeByAge(
		[]float64{10, 20, 5}, []float64{10000, 8000, 0}, []float64{0.4, 0.35, 0.25}, indicators.DefaultScale)
	if err != nil {
		return nil, err
	}

	show(report.Standardized([]report.GroupRate{
		{Name: "five strata", Result: five},
		{Name: "three strata", Result: three},
		{Name: "zero population stratum", Result: dropped},
	}, indicators.DefaultScale, 1))
	for _, w := range dropped.Warnings {
		fmt.Printf("   warning: %s\n", w)
	}

	return &Example{
		Name: "age_standardized",
		Inputs: map[string]any{
			"counts": counts, "populations": pops, "weights": weights,
		},
		Outputs: map[string]any{
			"five_strata":  five.Rate,
			"three_strata": three.Rate,
			"dropped":      dropped,
		},
	}, nil
}

// rollingAverage: weekly counts with a reporting gap
func rollingAverage() (*Example, error) {
	section("Rolling mean over weekly counts with a gap")

	nan := math.NaN()
	series := timeseries.New([]float64{12, 15, nan, 18, 22, 19, nan, nan, 25, 28})
	series.Name = "weekly_cases"

	trailing, err := series.RollingMean(3, indicators.WithMinPeriods(2))
	if err != nil {
		return nil, err
	}
	centered, err := series.RollingMean(3, indicators.WithMinPeriods(1), indicators.Centered())
	if err != nil {
		return nil, err
	}
	show(report.Rolling(series, trailing, 2))
	fmt.Printf("\n   centered: %v\n", formatValues(centered.Values))

	return &Example{
		Name:   "rolling_mean",
		Inputs: map[string]any{"values": formatValues(series.Values), "window": 3},
		Outputs: map[string]any{
			"trailing_min_periods_2": formatValues(trailing.Values),
			"centered_min_periods_1": formatValues(centered.Values),
		},
	}, nil
}

// comparison: two regions against a reference
func comparison() (*Example, error) {
	section("Rate ratio and difference")

	rows := []indicators.RateInput{
		{Label: "Urban", Cases: 120, Population: 80000},
		{Label: "Rural", Cases: 45, Population: 20000},
		{Label: "Province", Cases: 165, Population: 100000},
	}
	table, err := indicators.CompareTable(rows, "Province", indicators.DefaultScale)
	if err != nil {
		return nil, err
	}
	show(report.Comparisons(table, 1))

	return &Example{
		Name:    "comparison",
		Inputs:  map[string]any{"rows": rows, "reference": "Province"},
		Outputs: map[string]any{"rows": table},
	}, nil
}

// smallNumbers: suppression flags
func smallNumbers() (*Example, error) {
	section("Small-number flags")

	counts := []float64{2, 4, 8, 12, 18}
	flags, err := indicators.FlagSmallNumbers(counts, indicators.DefaultThreshold)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(counts))
	for i := range counts {
		labels[i] = fmt.Sprintf("area %d", i+1)
	}
	show(report.Flags(labels, counts, flags, indicators.DefaultThreshold))

	return &Example{
		Name:    "small_numbers",
		Inputs:  map[string]any{"counts": counts, "threshold": indicators.DefaultThreshold},
		Outputs: map[string]any{"flags": flags},
	}, nil
}

// formatValues renders NaN as the report's missing marker so the values
// survive JSON encoding.
func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = report.FormatFloat(v, 2)
	}
	return out
}
