// Package config provides configuration loading and validation for the
// intake CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
)

// Config is the intake agent configuration, loadable from a JSON file.
// All fields are optional; missing values use defaults or come from CLI
// flags.
type Config struct {
	// Provider policy. FallbackEnabled is a pointer so an omitted key can
	// be told apart from an explicit false; nil inherits the default (on).
	PreferredProvider string           `json:"preferred_provider,omitempty" validate:"omitempty,oneof=openai gemini anthropic cohere"`
	FallbackEnabled   *bool            `json:"fallback_enabled,omitempty"`
	RaceAll           bool             `json:"race_all,omitempty"`
	QuotaLimits       map[string]int64 `json:"quota_limits,omitempty"`

	// Classification
	ClassificationThreshold float64 `json:"classification_threshold,omitempty" validate:"gte=0,lte=1"`

	// Caching
	CacheCapacity          int `json:"cache_capacity,omitempty" validate:"gte=0"`
	TextCacheMaxAgeHours   int `json:"text_cache_max_age_hours,omitempty" validate:"gte=0"`
	ResultCacheMaxAgeHours int `json:"result_cache_max_age_hours,omitempty" validate:"gte=0"`

	// Persistence
	StorePath       string `json:"store_path,omitempty"`
	StoreQuotaBytes int    `json:"store_quota_bytes,omitempty" validate:"gte=0"`
	DatabaseURL     string `json:"database_url,omitempty"`

	// Generation
	Region string `json:"region,omitempty"`

	// Behavior
	BatchWorkers int  `json:"batch_workers,omitempty" validate:"gte=0"`
	Verbose      bool `json:"verbose,omitempty"`
}

// APIKeys carries per-provider credentials, read from the environment.
type APIKeys struct {
	OpenAI    string
	Gemini    string
	Anthropic string
	Cohere    string
}

// KeysFromEnv reads API keys from the conventional environment variables.
func KeysFromEnv() APIKeys {
	return APIKeys{
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
		Gemini:    os.Getenv("GEMINI_API_KEY"),
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		Cohere:    os.Getenv("COHERE_API_KEY"),
	}
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		PreferredProvider:       string(llm.ProviderOpenAI),
		FallbackEnabled:         boolPtr(true),
		ClassificationThreshold: 0.35,
		CacheCapacity:           50,
		TextCacheMaxAgeHours:    7 * 24,
		ResultCacheMaxAgeHours:  24,
		StorePath:               defaultStorePath(),
		Region:                  "Germany",
		BatchWorkers:            4,
	}
}

func boolPtr(v bool) *bool { return &v }

// FallbackOn reports the effective provider-fallback setting; an unset
// field means enabled.
func (c *Config) FallbackOn() bool {
	return c.FallbackEnabled == nil || *c.FallbackEnabled
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "intake_store.json"
	}
	return filepath.Join(home, ".bewerbungs-core", "store.json")
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. FallbackEnabled tracks presence through its pointer; the
// remaining bools default to false, so omitted and unset coincide.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.PreferredProvider == "" {
		result.PreferredProvider = defaults.PreferredProvider
	}
	if result.FallbackEnabled == nil {
		result.FallbackEnabled = defaults.FallbackEnabled
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Region == "" {
		result.Region = defaults.Region
	}

	if result.ClassificationThreshold == 0 {
		result.ClassificationThreshold = defaults.ClassificationThreshold
	}
	if result.CacheCapacity == 0 {
		result.CacheCapacity = defaults.CacheCapacity
	}
	if result.TextCacheMaxAgeHours == 0 {
		result.TextCacheMaxAgeHours = defaults.TextCacheMaxAgeHours
	}
	if result.ResultCacheMaxAgeHours == 0 {
		result.ResultCacheMaxAgeHours = defaults.ResultCacheMaxAgeHours
	}
	if result.StoreQuotaBytes == 0 {
		result.StoreQuotaBytes = defaults.StoreQuotaBytes
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = defaults.BatchWorkers
	}
	if result.QuotaLimits == nil {
		result.QuotaLimits = defaults.QuotaLimits
	}

	return result
}
