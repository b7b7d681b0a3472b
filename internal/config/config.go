// Package config loads indicator defaults from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOEPI_INDICATORS_SCALE.
const EnvPrefix = "GOEPI"

// Config represents the complete tool configuration
type Config struct {
	Indicators IndicatorsConfig `mapstructure:"indicators"`
	Rolling    RollingConfig    `mapstructure:"rolling"`
	Input      InputConfig      `mapstructure:"input"`
	Output     OutputConfig     `mapstructure:"output"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// IndicatorsConfig holds the per-call parameters of the formulas
type IndicatorsConfig struct {
	Scale     float64 `mapstructure:"scale" validate:"gt=0"`
	Alpha     float64 `mapstructure:"alpha" validate:"gt=0,lt=1"`
	Threshold int     `mapstructure:"threshold" validate:"gte=1"`
}

// RollingConfig holds moving average settings. MinPeriods 0 means the
// window size.
type RollingConfig struct {
	Window     int  `mapstructure:"window" validate:"gte=1"`
	MinPeriods int  `mapstructure:"min_periods" validate:"gte=0,ltefield=Window"`
	Centered   bool `mapstructure:"centered"`
}

// InputConfig names the columns read from input tables
type InputConfig struct {
	Sheet            string `mapstructure:"sheet"`
	LabelColumn      string `mapstructure:"label_column"`
	GroupColumn      string `mapstructure:"group_column"`
	AgeGroupColumn   string `mapstructure:"age_group_column"`
	CasesColumn      string `mapstructure:"cases_column" validate:"required"`
	PopulationColumn string `mapstructure:"population_column"`
	WeightColumn     string `mapstructure:"weight_column"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format   string `mapstructure:"format" validate:"oneof=text csv json xlsx"`
	Decimals int    `mapstructure:"decimals" validate:"gte=0,lte=10"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configuration from an optional file and GOEPI_* environment
// variables. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("indicators.scale", 100000.0)
	v.SetDefault("indicators.alpha", 0.05)
	v.SetDefault("indicators.threshold", 5)

	v.SetDefault("rolling.window", 7)
	v.SetDefault("rolling.min_periods", 0)
	v.SetDefault("rolling.centered", false)

	v.SetDefault("input.sheet", "")
	v.SetDefault("input.label_column", "label")
	v.SetDefault("input.group_column", "group")
	v.SetDefault("input.age_group_column", "age_group")
	v.SetDefault("input.cases_column", "cases")
	v.SetDefault("input.population_column", "population")
	v.SetDefault("input.weight_column", "weight")

	v.SetDefault("output.format", "text")
	v.SetDefault("output.decimals", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

var validate = validator.New()

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", keyOf(fe), tagText(fe), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// keyOf turns Config.Rolling.MinPeriods into rolling.minperiods.
func keyOf(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.StructNamespace(), "Config.")
	return strings.ToLower(ns)
}

func tagText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
