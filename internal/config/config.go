// Package config loads CLI configuration from an optional file and RANKER_*
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RANKER_DATABASE_URL
const EnvPrefix = "RANKER"

// Config is the resolved CLI configuration. All fields are optional.
type Config struct {
	// Storage: at most one of DatabaseURL and SQLitePath
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	// LLM enrichment
	APIKey        string        `mapstructure:"api_key"`
	UseLLM        bool          `mapstructure:"use_llm"`
	LLMModel      string        `mapstructure:"llm_model"`
	EnrichTimeout time.Duration `mapstructure:"enrich_timeout"`

	// Batch tuning
	OwnerID        string        `mapstructure:"owner_id"`
	BatchSize      int           `mapstructure:"batch_size"`
	Concurrency    int           `mapstructure:"concurrency"`
	ExtractTimeout time.Duration `mapstructure:"extract_timeout"`

	// Output
	LogJSON bool `mapstructure:"log_json"`
	Debug   bool `mapstructure:"debug"`
	Verbose bool `mapstructure:"verbose"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		BatchSize:      5,
		Concurrency:    5,
		ExtractTimeout: 30 * time.Second,
		EnrichTimeout:  20 * time.Second,
	}
}

var keys = []string{
	"database_url", "sqlite_path", "api_key", "use_llm", "llm_model", "enrich_timeout",
	"owner_id", "batch_size", "concurrency", "extract_timeout",
	"log_json", "debug", "verbose",
}

// Load reads the config file at path (JSON, YAML or TOML by extension) when path is
// not empty, then applies RANKER_* environment overrides. GEMINI_API_KEY is accepted
// for api_key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range keys {
		envName := EnvPrefix + "_" + strings.ToUpper(key)
		if key == "api_key" {
			if err := v.BindEnv(key, envName, "GEMINI_API_KEY"); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", envName, err)
			}
			continue
		}
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envName, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and mutually exclusive fields. Required values are
// checked by the commands that need them.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("config error: 'batch_size' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.ExtractTimeout < 0 || c.EnrichTimeout < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.OwnerID != "" {
		if _, err := uuid.Parse(c.OwnerID); err != nil {
			return fmt.Errorf("config error: 'owner_id' is not a UUID: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a copy with zero values filled from defaults. Booleans
// are not merged since unset and false look the same.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.SQLitePath = defaults.SQLitePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OwnerID == "" {
		result.OwnerID = defaults.OwnerID
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.ExtractTimeout == 0 {
		result.ExtractTimeout = defaults.ExtractTimeout
	}
	if result.EnrichTimeout == 0 {
		result.EnrichTimeout = defaults.EnrichTimeout
	}
	return result
}

// Owner returns the configured owner id, uuid.Nil when unset
func (c *Config) Owner() (uuid.UUID, error) {
	if c.OwnerID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(c.OwnerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid owner id %q: %w", c.OwnerID, err)
	}
	return id, nil
}
