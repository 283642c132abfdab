package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var formats = map[string]bool{"text": true, "json": true, "yaml": true}

type Config struct {
	Env           string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	Input         string `mapstructure:"CONSULT_INPUT"`
	Format        string `mapstructure:"REPORT_FORMAT"`
	TopN          int    `mapstructure:"REPORT_TOP_N"`
	SummaryRows   int    `mapstructure:"REPORT_SUMMARY_ROWS"`
	ReferenceYear int    `mapstructure:"REFERENCE_YEAR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REPORT_FORMAT", "text")
	v.SetDefault("REPORT_TOP_N", 10)
	v.SetDefault("REPORT_SUMMARY_ROWS", 5)
	v.SetDefault("REFERENCE_YEAR", 0) // 0 -> year of the run

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("CONSULT_INPUT")
	v.BindEnv("REPORT_FORMAT")
	v.BindEnv("REPORT_TOP_N")
	v.BindEnv("REPORT_SUMMARY_ROWS")
	v.BindEnv("REFERENCE_YEAR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration can drive a report run. The input
// path is checked separately because only the report command needs it.
func (c *Config) Validate() error {
	if !formats[c.Format] {
		return fmt.Errorf("REPORT_FORMAT must be \"text\", \"json\" or \"yaml\", got %q", c.Format)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("REPORT_TOP_N must be positive, got %d", c.TopN)
	}
	if c.SummaryRows < 0 {
		return fmt.Errorf("REPORT_SUMMARY_ROWS must not be negative, got %d", c.SummaryRows)
	}
	if c.ReferenceYear < 0 {
		return fmt.Errorf("REFERENCE_YEAR must not be negative, got %d", c.ReferenceYear)
	}
	return nil
}

// RequireInput returns an error when no export path is configured.
func (c *Config) RequireInput() error {
	if c.Input == "" {
		return fmt.Errorf("CONSULT_INPUT (or --input) is required")
	}
	return nil
}
