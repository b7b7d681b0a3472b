// Package main provides the CLI entrypoint for goepi.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goepi/dataset"
	"github.com/sartorproj/goepi/indicators"
	"github.com/sartorproj/goepi/internal/config"
	"github.com/sartorproj/goepi/internal/logger"
	"github.com/sartorproj/goepi/report"
	"github.com/sartorproj/goepi/timeseries"
)

// app carries the flag values of one command tree.
type app struct {
	configPath string
	output     string
	format     string
	decimals   int
	logLevel   string
	sheet      string
	cases      string
	population string

	scale     float64
	alpha     float64
	threshold int

	column     string
	dateColumn string
	idColumn   string
	seriesID   string
	skipRows   int
	saveSeries string
	window     int
	minPeriods int
	centered   bool

	reference string

	cfg *config.Config
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:               "goepi",
		Short:             "Epidemiological indicators from case and population tables",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (yaml, toml or json)")
	pf.StringVarP(&a.output, "output", "o", "", "write to file instead of stdout")
	pf.StringVarP(&a.format, "format", "f", defaults.Output.Format, "output format: "+strings.Join(report.Formats, ", "))
	pf.IntVar(&a.decimals, "decimals", defaults.Output.Decimals, "decimal places for rates")
	pf.StringVar(&a.logLevel, "log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
	pf.StringVar(&a.sheet, "sheet", defaults.Input.Sheet, "worksheet for xlsx input (default: first)")
	pf.StringVar(&a.cases, "cases-column", defaults.Input.CasesColumn, "header of the case count column")
	pf.StringVar(&a.population, "population-column", defaults.Input.PopulationColumn, "header of the population column")
	pf.Float64Var(&a.scale, "scale", defaults.Indicators.Scale, "rate multiplier")
	pf.Float64Var(&a.alpha, "alpha", defaults.Indicators.Alpha, "confidence level complement (0-1)")
	pf.IntVar(&a.threshold, "threshold", defaults.Indicators.Threshold, "small-number threshold")

	rootCmd.AddCommand(a.newCrudeCmd())
	rootCmd.AddCommand(a.newStandardizeCmd())
	rootCmd.AddCommand(a.newRollingCmd())
	rootCmd.AddCommand(a.newCompareCmd())
	rootCmd.AddCommand(a.newFlagCmd())

	return rootCmd
}

func (a *app) newCrudeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crude FILE",
		Short: "Crude rates with exact Poisson intervals and small-number flags",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runCrude,
	}
}

func (a *app) newStandardizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standardize FILE",
		Short: "Directly age-standardized rate per group",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runStandardize,
	}
}

func (a *app) newRollingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolling FILE",
		Short: "Moving average of a series with missing values",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runRolling,
	}
	defaults := config.Default()
	cmd.Flags().StringVar(&a.column, "column", "y", "value column")
	cmd.Flags().StringVar(&a.dateColumn, "date-column", "", "date column (optional)")
	cmd.Flags().StringVar(&a.idColumn, "id-column", "", "column identifying the series in a long table")
	cmd.Flags().StringVar(&a.seriesID, "series", "", "keep only rows whose id column equals this value")
	cmd.Flags().IntVar(&a.skipRows, "skip-rows", 0, "preamble rows before the header")
	cmd.Flags().StringVar(&a.saveSeries, "save-series", "", "also write the smoothed series as CSV to this path")
	cmd.Flags().IntVar(&a.window, "window", defaults.Rolling.Window, "window length")
	cmd.Flags().IntVar(&a.minPeriods, "min-periods", defaults.Rolling.MinPeriods, "observations required per window (0: window)")
	cmd.Flags().BoolVar(&a.centered, "centered", defaults.Rolling.Centered, "center the window on each position")
	return cmd
}

func (a *app) newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Rate ratio and difference of each row against a reference row",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runCompare,
	}
	cmd.Flags().StringVar(&a.reference, "reference", "", "label of the reference row")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}

func (a *app) newFlagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flag FILE",
		Short: "Mark counts below the small-number threshold",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runFlag,
	}
}

// setup merges the config file under explicitly set flags and installs
// the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "format", &a.format, cfg.Output.Format)
	applyIntConfig(cmd, "decimals", &a.decimals, cfg.Output.Decimals)
	applyStringConfig(cmd, "log-level", &a.logLevel, cfg.Logging.Level)
	applyStringConfig(cmd, "sheet", &a.sheet, cfg.Input.Sheet)
	applyStringConfig(cmd, "cases-column", &a.cases, cfg.Input.CasesColumn)
	applyStringConfig(cmd, "population-column", &a.population, cfg.Input.PopulationColumn)
	applyFloatConfig(cmd, "scale", &a.scale, cfg.Indicators.Scale)
	applyFloatConfig(cmd, "alpha", &a.alpha, cfg.Indicators.Alpha)
	applyIntConfig(cmd, "threshold", &a.threshold, cfg.Indicators.Threshold)
	applyIntConfig(cmd, "window", &a.window, cfg.Rolling.Window)
	applyIntConfig(cmd, "min-periods", &a.minPeriods, cfg.Rolling.MinPeriods)
	applyBoolConfig(cmd, "centered", &a.centered, cfg.Rolling.Centered)

	cfg.Output.Format = a.format
	cfg.Output.Decimals = a.decimals
	cfg.Logging.Level = a.logLevel
	cfg.Input.Sheet = a.sheet
	cfg.Input.CasesColumn = a.cases
	cfg.Input.PopulationColumn = a.population
	cfg.Indicators.Scale = a.scale
	cfg.Indicators.Alpha = a.alpha
	cfg.Indicators.Threshold = a.threshold
	cfg.Rolling.Window = a.window
	cfg.Rolling.MinPeriods = a.minPeriods
	cfg.Rolling.Centered = a.centered

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	return nil
}

func (a *app) tableOptions() indicators.TableOptions {
	return indicators.TableOptions{
		Scale:     a.cfg.Indicators.Scale,
		Alpha:     a.cfg.Indicators.Alpha,
		Threshold: a.cfg.Indicators.Threshold,
	}
}

// columnSet selects the numeric columns a command reads.
type columnSet int

const (
	countColumns columnSet = iota
	rateColumns
	strataColumns
)

func (a *app) columns(set columnSet) dataset.Columns {
	in := a.cfg.Input
	cols := dataset.Columns{
		Label:    in.LabelColumn,
		Group:    in.GroupColumn,
		AgeGroup: in.AgeGroupColumn,
		Cases:    in.CasesColumn,
	}
	if set >= rateColumns {
		cols.Population = in.PopulationColumn
	}
	if set >= strataColumns {
		cols.Weight = in.WeightColumn
	}
	return cols
}

// loadRecords reads a CSV or XLSX table, chosen by file extension.
func (a *app) loadRecords(path string, set columnSet) ([]dataset.Record, error) {
	cols := a.columns(set)
	var (
		records []dataset.Record
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = dataset.LoadXLSX(path, a.cfg.Input.Sheet, cols)
	default:
		records, err = dataset.LoadCSV(path, cols)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded records", "path", path, "rows", len(records))
	return records, nil
}

func (a *app) runCrude(cmd *cobra.Command, args []string) error {
	records, err := a.loadRecords(args[0], rateColumns)
	if err != nil {
		return err
	}
	opts := a.tableOptions()
	rows, err := indicators.CrudeRateTable(dataset.RateInputs(records), opts)
	if err != nil {
		return err
	}
	return a.render(cmd, report.CrudeRates(rows, opts, a.cfg.Output.Decimals))
}

func (a *app) runStandardize(cmd *cobra.Command, args []string) error {
	records, err := a.loadRecords(args[0], strataColumns)
	if err != nil {
		return err
	}
	scale := a.cfg.Indicators.Scale
	var groups []report.GroupRate
	for _, g := range dataset.AgeStrata(records) {
		res, err := indicators.StandardizeStrata(g.Strata, scale)
		if err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
		for _, w := range res.Warnings {
			slog.Warn(w, "group", g.Name)
		}
		groups = append(groups, report.GroupRate{Name: g.Name, Result: res})
	}
	return a.render(cmd, report.Standardized(groups, scale, a.cfg.Output.Decimals))
}

func (a *app) runRolling(cmd *cobra.Command, args []string) error {
	opts := timeseries.DefaultCSVOptions()
	opts.ValueColumn = a.column
	opts.DateColumn = a.dateColumn
	opts.IDColumn = a.idColumn
	opts.IDFilter = a.seriesID
	opts.SkipRows = a.skipRows
	if a.skipRows < 0 {
		return fmt.Errorf("--skip-rows cannot be negative, got %d", a.skipRows)
	}
	series, err := timeseries.LoadCSV(args[0], opts)
	if err != nil {
		return err
	}
	if n := len(series.Missing()); n > 0 {
		slog.Info("series has missing values", "missing", n, "length", series.Len())
	}

	r := a.cfg.Rolling
	var ropts []indicators.RollingOption
	if r.MinPeriods > 0 {
		ropts = append(ropts, indicators.WithMinPeriods(r.MinPeriods))
	}
	if r.Centered {
		ropts = append(ropts, indicators.Centered())
	}
	smoothed, err := series.RollingMean(r.Window, ropts...)
	if err != nil {
		return err
	}
	if a.saveSeries != "" {
		if err := timeseries.SaveCSV(smoothed, a.saveSeries); err != nil {
			return fmt.Errorf("failed to save series: %w", err)
		}
		slog.Debug("saved smoothed series", "path", a.saveSeries)
	}
	return a.render(cmd, report.Rolling(series, smoothed, a.cfg.Output.Decimals))
}

func (a *app) runCompare(cmd *cobra.Command, args []string) error {
	records, err := a.loadRecords(args[0], rateColumns)
	if err != nil {
		return err
	}
	rows, err := indicators.CompareTable(dataset.RateInputs(records), a.reference, a.cfg.Indicators.Scale)
	if err != nil {
		return err
	}
	return a.render(cmd, report.Comparisons(rows, a.cfg.Output.Decimals))
}

func (a *app) runFlag(cmd *cobra.Command, args []string) error {
	records, err := a.loadRecords(args[0], countColumns)
	if err != nil {
		return err
	}
	counts := dataset.Counts(records)
	flags, err := indicators.FlagSmallNumbers(counts, a.cfg.Indicators.Threshold)
	if err != nil {
		return err
	}
	return a.render(cmd, report.Flags(dataset.Labels(records), counts, flags, a.cfg.Indicators.Threshold))
}

// render writes the table to --output or the command's stdout.
func (a *app) render(cmd *cobra.Command, t *report.Table) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.output != "" {
		f, err := os.Create(a.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				slog.Error("failed to close output", "path", a.output, "error", cerr)
			}
		}()
		w = f
	}
	return report.Write(w, t, a.cfg.Output.Format)
}

func applyStringConfig(cmd *cobra.Command, name string, target *string, value string) {
	if flagChanged(cmd, name) {
		return
	}
	*target = value
}

func applyIntConfig(cmd *cobra.Command, name string, target *int, value int) {
	if flagChanged(cmd, name) {
		return
	}
	*target = value
}

func applyFloatConfig(cmd *cobra.Command, name string, target *float64, value float64) {
	if flagChanged(cmd, name) {
		return
	}
	*target = value
}

func applyBoolConfig(cmd *cobra.Command, name string, target *bool, value bool) {
	if flagChanged(cmd, name) {
		return
	}
	*target = value
}

// flagChanged reports whether the flag was set on the command line. Flags
// the command does not define count as unset.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
