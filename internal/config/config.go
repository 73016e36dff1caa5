package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
)

// FileName is the default config file name.
const FileName = "catexplorer.yaml"

// Environment variables that override the config file.
const (
	EnvAddr            = "CATEXPLORER_ADDR"
	EnvLogLevel        = "CATEXPLORER_LOG_LEVEL"
	EnvLogFormat       = "CATEXPLORER_LOG_FORMAT"
	EnvCurrency        = "CATEXPLORER_CURRENCY"
	EnvIncludeIncoming = "CATEXPLORER_INCLUDE_INCOMING"
)

// Config represents the top-level catexplorer.yaml configuration.
type Config struct {
	Filter  FilterConfig  `yaml:"filter"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// FilterConfig controls which rows are aggregated and how many groups are kept.
type FilterConfig struct {
	IncludeIncoming    bool     `yaml:"include_incoming"`
	ExcludedCategories []string `yaml:"excluded_categories"`
	CategoryLimit      int      `yaml:"category_limit"`
	MerchantLimit      int      `yaml:"merchant_limit"`
}

// DisplayConfig controls formatting.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

// ServerConfig controls the HTTP dashboard.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Load reads a catexplorer.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock exclusion set and limits.
func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			IncludeIncoming:    false,
			ExcludedCategories: append([]string(nil), aggregate.DefaultExcludedCategories...),
			CategoryLimit:      aggregate.DefaultCategoryLimit,
			MerchantLimit:      aggregate.DefaultMerchantLimit,
		},
		Display: DisplayConfig{
			CurrencySymbol: aggregate.DefaultCurrencySymbol,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := getenv(EnvCurrency); v != "" {
		c.Display.CurrencySymbol = v
	}
	if v := getenv(EnvIncludeIncoming); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvIncludeIncoming, v, err)
		}
		c.Filter.IncludeIncoming = b
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Filter.CategoryLimit < 0 {
		problems = append(problems, fmt.Sprintf("filter.category_limit %d: must be >= 0", c.Filter.CategoryLimit))
	}
	if c.Filter.MerchantLimit < 0 {
		problems = append(problems, fmt.Sprintf("filter.merchant_limit %d: must be >= 0", c.Filter.MerchantLimit))
	}
	for i, cat := range c.Filter.ExcludedCategories {
		if strings.TrimSpace(cat) == "" {
			problems = append(problems, fmt.Sprintf("filter.excluded_categories[%d]: must not be blank", i))
		}
	}
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr: must not be empty")
	}
	if c.Server.MaxUploadMB < 1 || c.Server.MaxUploadMB > 1024 {
		problems = append(problems, fmt.Sprintf("server.max_upload_mb %d: must be between 1 and 1024", c.Server.MaxUploadMB))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q: must be one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q: must be console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// PipelineOptions converts the filter and display settings for aggregate.New.
func (c *Config) PipelineOptions() aggregate.Options {
	return aggregate.Options{
		ExcludedCategories: append([]string(nil), c.Filter.ExcludedCategories...),
		CategoryLimit:      c.Filter.CategoryLimit,
		MerchantLimit:      c.Filter.MerchantLimit,
		CurrencySymbol:     c.Display.CurrencySymbol,
	}
}
