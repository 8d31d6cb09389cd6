// Package config loads the agentready configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dotcommander/agentready/internal/schema"
)

// Config is the user-supplied configuration for a run. Weights and
// ExcludedAttributes drive the scoring engine; the remaining fields are
// display and execution settings. Loaded once per run and treated as
// immutable afterward.
type Config struct {
	Weights            map[string]float64 `mapstructure:"weights"`
	ExcludedAttributes []string           `mapstructure:"excluded_attributes"`
	OutputDir          string             `mapstructure:"output_dir"`
	ReportTheme        string             `mapstructure:"report_theme"`
	LanguageOverrides  map[string]string  `mapstructure:"language_overrides"`
	Exclude            []string           `mapstructure:"exclude"` // scanner glob excludes
	Format             string             `mapstructure:"format"`
	Quiet              bool               `mapstructure:"quiet"`
	Verbose            bool               `mapstructure:"verbose"`
	Concurrency        int                `mapstructure:"concurrency"`
	Parallel           bool               `mapstructure:"parallel"`
}

// configNames are the file names probed in the target directory, in order.
var configNames = []string{".agentready.yaml", ".agentready.yml", ".agentready.json"}

// Load reads configuration for a run. Defaults come first, then a config
// file discovered in dir (or the explicit file path in configFile), then
// AGENTREADY_* environment variables. The raw file content is validated
// against the embedded schema before unmarshaling.
func Load(dir, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("format", "console")
	v.SetDefault("report_theme", "dark")
	v.SetDefault("quiet", false)
	v.SetDefault("verbose", false)
	v.SetDefault("concurrency", 8)
	v.SetDefault("parallel", true)

	used, err := readConfigFile(v, dir, configFile)
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix("AGENTREADY")
	v.AutomaticEnv()

	if used != "" {
		if err := schema.ValidateConfig(v.AllSettings()); err != nil {
			return nil, fmt.Errorf("invalid configuration in %s: %w", used, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// readConfigFile points viper at the config file and reads it. Returns the
// path used, or empty when no config file exists (which is not an error).
func readConfigFile(v *viper.Viper, dir, configFile string) (string, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
		return configFile, nil
	}

	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// validate checks the execution settings. Weight values are validated by the
// engine's resolver, which can report unknown attribute ids as warnings.
func validate(cfg *Config) error {
	switch cfg.Format {
	case "console", "json", "markdown":
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", cfg.Format)
	}

	switch cfg.ReportTheme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("invalid report_theme: %s. Must be 'dark' or 'light'", cfg.ReportTheme)
	}

	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}
