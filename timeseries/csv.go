package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "y")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of preamble rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006",
}

// IsMissing reports whether a cell is a missing-value marker.
func IsMissing(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "nan", "null", "none", ".":
		return true
	}
	return false
}

// LoadCSV loads a series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// LoadCSVFromReader loads a series from an io.Reader.
// Missing markers are kept as NaN so positions stay evenly spaced; a cell
// that is neither a number nor a missing marker is an error.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	// Preamble rows rarely have as many fields as the data.
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("skip row %d: %w", i+1, err)
		}
	}

	valueIdx, dateIdx, idIdx := -1, -1, -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}

		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case h == opts.ValueColumn || (opts.ValueColumn == "" && (h == "y" || h == "value" || h == "cases")):
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case h == "ds" || h == "date" || h == "week" || h == "month" || h == "year":
				if dateIdx == -1 && opts.DateColumn == "" {
					dateIdx = i
				}
			case opts.IDColumn != "" && h == opts.IDColumn:
				idIdx = i
			}
		}

		if valueIdx == -1 {
			if opts.ValueColumn != "" {
				return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
			}
			valueIdx = len(header) - 1
		}
		if opts.IDFilter != "" && idIdx == -1 {
			return nil, fmt.Errorf("id column %q not found", opts.IDColumn)
		}
	} else {
		// No header: date in the first column, value in the second
		valueIdx = 1
		dateIdx = 0
	}

	formats := append([]string{opts.DateFormat}, dateFormats...)

	var values []float64
	var timestamps []time.Time
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if opts.IDFilter != "" {
			if idIdx >= len(record) || strings.TrimSpace(strings.Trim(record[idIdx], "\"")) != opts.IDFilter {
				continue
			}
		}

		if valueIdx >= len(record) {
			return nil, fmt.Errorf("row %d: missing value column", line)
		}
		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		if IsMissing(valStr) {
			values = append(values, math.NaN())
		} else {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid value %q", line, valStr)
			}
			values = append(values, val)
		}

		if dateIdx >= 0 && dateIdx < len(record) {
			dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
			if ts, ok := parseDate(dateStr, formats); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no data rows found in CSV")
	}

	series := New(values)
	series.Name = opts.IDFilter
	if len(timestamps) == len(values) {
		series.Timestamps = timestamps
	}
	return series, nil
}

func parseDate(s string, formats []string) (time.Time, bool) {
	for _, f := range formats {
		if f == "" {
			continue
		}
		if ts, err := time.Parse(f, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// WriteCSV writes a series as CSV with an index or date column.
// Missing values are written as NA.
func WriteCSV(w io.Writer, series *Series) error {
	writer := bufio.NewWriter(w)

	if series.HasTimestamps() {
		writer.WriteString("ds,y\n")
	} else {
		writer.WriteString("index,y\n")
	}

	for i, v := range series.Values {
		if series.HasTimestamps() {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		} else {
			writer.WriteString(strconv.Itoa(i + 1))
		}
		writer.WriteString(",")
		if math.IsNaN(v) {
			writer.WriteString("NA")
		} else {
			writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return writer.Flush()
}

// SaveCSV saves a series to a CSV file in the form written by WriteCSV.
func SaveCSV(series *Series, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCSV(file, series)
}
