// Package report renders indicator results as tables in text, CSV, JSON
// and XLSX form.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sartorproj/goepi/indicators"
	"github.com/sartorproj/goepi/timeseries"
)

// Missing is how NaN and undefined values are rendered.
const Missing = "NA"

// Table is a rendered grid of cells.
type Table struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
}

func numericTable(title string, headers []string, textCols int) *Table {
	right := make(map[int]bool, len(headers))
	for i := textCols; i < len(headers); i++ {
		right[i] = true
	}
	return &Table{Title: title, Headers: headers, RightAlign: right}
}

// FormatFloat formats v with the given number of decimals, NaN as Missing.
func FormatFloat(v float64, decimals int) string {
	if math.IsNaN(v) {
		return Missing
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFlag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// CrudeRates builds the table of crude rates with intervals and flags.
func CrudeRates(rows []indicators.RateRow, opts indicators.TableOptions, decimals int) *Table {
	level := FormatFloat((1-opts.Alpha)*100, 0)
	t := numericTable(
		fmt.Sprintf("Crude rate per %s", formatCount(opts.Scale)),
		[]string{"label", "cases", "population", "rate", "lower_" + level, "upper_" + level, "small_n"},
		1,
	)
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Label,
			formatCount(r.Cases),
			formatCount(r.Population),
			FormatFloat(r.Rate, decimals),
			FormatFloat(r.CI.Lower, decimals),
			FormatFloat(r.CI.Upper, decimals),
			formatFlag(r.SmallNumber),
		})
	}
	return t
}

// Comparisons builds the table of rate ratios and differences.
func Comparisons(rows []indicators.Comparison, decimals int) *Table {
	t := numericTable("Comparison with reference group",
		[]string{"group", "reference", "rate", "reference_rate", "ratio", "difference"}, 2)
	for _, c := range rows {
		ratio := Missing
		if c.RatioDefined {
			ratio = FormatFloat(c.Ratio, 3)
		}
		t.Rows = append(t.Rows, []string{
			c.LabelA,
			c.LabelB,
			FormatFloat(c.RateA, decimals),
			FormatFloat(c.RateB, decimals),
			ratio,
			FormatFloat(c.Difference, decimals),
		})
	}
	return t
}

// GroupRate is the standardized rate of one population.
type GroupRate struct {
	Name   string
	Result *indicators.AgeStandardizedResult
}

// Standardized builds the table of age-standardized rates.
func Standardized(groups []GroupRate, scale float64, decimals int) *Table {
	t := numericTable(
		fmt.Sprintf("Age-standardized rate per %s", formatCount(scale)),
		[]string{"group", "rate", "applied_weight", "excluded_strata", "excluded_cases"}, 1,
	)
	for _, g := range groups {
		t.Rows = append(t.Rows, []string{
			g.Name,
			FormatFloat(g.Result.Rate, decimals),
			FormatFloat(g.Result.AppliedWeight, 3),
			strconv.Itoa(len(g.Result.ExcludedStrata)),
			formatCount(g.Result.ExcludedCases),
		})
	}
	return t
}

// Rolling builds a two-column table of a series and its moving average.
// Rows are labelled by timestamp when the series has them, else by position.
func Rolling(original, smoothed *timeseries.Series, decimals int) *Table {
	t := numericTable("Rolling mean", []string{"period", "value", "rolling_mean"}, 1)
	for i, v := range original.Values {
		period := strconv.Itoa(i + 1)
		if original.HasTimestamps() {
			period = original.Timestamps[i].Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []string{
			period,
			FormatFloat(v, -1),
			FormatFloat(smoothed.Values[i], decimals),
		})
	}
	return t
}

// Flags builds the small-number flag table.
func Flags(labels []string, counts []float64, flags []bool, threshold int) *Table {
	t := numericTable(fmt.Sprintf("Small numbers (count < %d)", threshold),
		[]string{"label", "cases", "small_n"}, 1)
	for i := range counts {
		t.Rows = append(t.Rows, []string{labels[i], formatCount(counts[i]), formatFlag(flags[i])})
	}
	return t
}

// Lines renders the table as aligned text lines, header first.
func (t *Table) Lines() []string {
	colCount := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range t.Headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, formatRow(t.Headers, widths, t.RightAlign))
	}
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row, widths, t.RightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// displayWidth counts terminal cells, so wide region names stay aligned.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
