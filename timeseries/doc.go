// Package timeseries provides evenly spaced series for rolling indicators.
//
// Positions define spacing; timestamps are carried as labels only and are not
// validated. Missing observations are NaN and keep their position, so a gap
// in the data never shifts later values.
//
// # Creating a Series
//
//	weekly := timeseries.New([]float64{12, 15, math.NaN(), 18, 22})
//
// # Loading from CSV
//
//	// Empty, NA, NaN and null cells become NaN
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "cases"
//	opts.IDColumn, opts.IDFilter = "region", "North"
//	series, err := timeseries.LoadCSV("weekly_cases.csv", opts)
//
// # Rolling Averages
//
//	smoothed, err := series.RollingMean(4, indicators.WithMinPeriods(3))
//	err = timeseries.SaveCSV(smoothed, "weekly_smoothed.csv")
package timeseries
