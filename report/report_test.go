package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/goepi/indicators"
	"github.com/sartorproj/goepi/timeseries"
)

func crudeTable(t *testing.T) *Table {
	t.Helper()
	rows, err := indicators.CrudeRateTable([]indicators.RateInput{
		{Label: "North", Cases: 150, Population: 50000},
		{Label: "South", Cases: 3, Population: 8000},
	}, indicators.DefaultTableOptions())
	require.NoError(t, err)
	return CrudeRates(rows, indicators.DefaultTableOptions(), 1)
}

func TestCrudeRates(t *testing.T) {
	table := crudeTable(t)

	assert.Equal(t, "Crude rate per 100000", table.Title)
	assert.Equal(t, []string{"label", "cases", "population", "rate", "lower_95", "upper_95", "small_n"}, table.Headers)
	assert.Equal(t, []string{"North", "150", "50000", "300.0", "253.9", "352.0", "no"}, table.Rows[0])
	assert.Equal(t, "yes", table.Rows[1][6])
}

func TestLines(t *testing.T) {
	table := &Table{
		Headers:    []string{"name", "n"},
		Rows:       [][]string{{"a", "1"}, {"longer", "100"}},
		RightAlign: map[int]bool{1: true},
	}

	assert.Equal(t, []string{
		"name      n",
		"a         1",
		"longer  100",
	}, table.Lines())

	assert.Nil(t, (&Table{}).Lines())
}

func TestLinesWideCharacters(t *testing.T) {
	table := &Table{
		Headers:    []string{"region", "n"},
		Rows:       [][]string{{"東京", "1"}, {"Oslo", "2"}},
		RightAlign: map[int]bool{1: true},
	}

	assert.Equal(t, []string{
		"region  n",
		"東京    1",
		"Oslo    2",
	}, table.Lines())
}

func TestComparisons(t *testing.T) {
	rows, err := indicators.CompareTable([]indicators.RateInput{
		{Label: "A", Cases: 50, Population: 10000},
		{Label: "B", Cases: 0, Population: 10000},
	}, "B", indicators.DefaultScale)
	require.NoError(t, err)

	table := Comparisons(rows, 1)
	assert.Equal(t, []string{"A", "B", "500.0", "0.0", Missing, "500.0"}, table.Rows[0])
	assert.Equal(t, "1.000", table.Rows[1][4])
}

func TestStandardized(t *testing.T) {
	result, err := indicators.StandardizeByAge(
		[]float64{10, 5}, []float64{10000, 0}, []float64{1, 1}, indicators.DefaultScale)
	require.NoError(t, err)

	table := Standardized([]GroupRate{{Name: "Province A", Result: result}}, indicators.DefaultScale, 1)
	assert.Equal(t, []string{"Province A", "50.0", "0.500", "1", "5"}, table.Rows[0])
}

func TestRolling(t *testing.T) {
	s := timeseries.New([]float64{1, math.NaN(), 3})
	smoothed, err := s.RollingMean(2, indicators.WithMinPeriods(1))
	require.NoError(t, err)

	table := Rolling(s, smoothed, 2)
	assert.Equal(t, [][]string{
		{"1", "1", "1.00"},
		{"2", Missing, "1.00"},
		{"3", "3", "3.00"},
	}, table.Rows)
}

func TestFlags(t *testing.T) {
	table := Flags([]string{"a", "b"}, []float64{2, 8}, []bool{true, false}, 5)
	assert.Equal(t, "Small numbers (count < 5)", table.Title)
	assert.Equal(t, [][]string{{"a", "2", "yes"}, {"b", "8", "no"}}, table.Rows)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, crudeTable(t), FormatText))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Crude rate per 100000\n\n"))
	assert.Contains(t, out, "253.9")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, crudeTable(t), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "label,cases,population,rate,lower_95,upper_95,small_n", lines[0])
	assert.Equal(t, "North,150,50000,300.0,253.9,352.0,no", lines[1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, crudeTable(t), FormatJSON))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "300.0", decoded[0]["rate"])
	assert.Equal(t, "yes", decoded[1]["small_n"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, crudeTable(t), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "rate", rows[0][3])
	assert.Equal(t, "352.0", rows[1][5])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, crudeTable(t), "pdf")
	assert.ErrorContains(t, err, "unknown output format")
}
