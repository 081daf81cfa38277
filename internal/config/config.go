// Package config loads service configuration from a file, the environment and flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HRI"

// Config is the service configuration
type Config struct {
	Port                 int       `mapstructure:"port"`
	DatabaseURL          string    `mapstructure:"database_url"`
	CatalogPath          string    `mapstructure:"catalog_path"`
	GeminiAPIKey         string    `mapstructure:"gemini_api_key"`
	HistoryLimit         int       `mapstructure:"history_limit"`
	ContextWindow        int       `mapstructure:"context_window"`
	MaxUploadBytes       int64     `mapstructure:"max_upload_bytes"`
	ScreeningConcurrency int       `mapstructure:"screening_concurrency"`
	CORSOrigin           string    `mapstructure:"cors_origin"`
	RateLimitPerMinute   int       `mapstructure:"rate_limit_per_minute"`
	Log                  LogConfig `mapstructure:"log"`
}

// LogConfig selects the log encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("history_limit", 50)
	v.SetDefault("context_window", 10)
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("screening_concurrency", 4)
	v.SetDefault("cors_origin", "*")
	v.SetDefault("rate_limit_per_minute", 60)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration into v from the optional file at path and from
// HRI_* environment variables, then validates it. The unprefixed PORT,
// DATABASE_URL and GEMINI_API_KEY variables are honored as fallbacks.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, fallback := range map[string]string{
		"port":           "PORT",
		"database_url":   "DATABASE_URL",
		"gemini_api_key": "GEMINI_API_KEY",
	} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), fallback); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("config error: 'history_limit' must be at least 1")
	}
	if c.ContextWindow < 1 || c.ContextWindow > c.HistoryLimit {
		return fmt.Errorf("config error: 'context_window' must be between 1 and history_limit (%d)", c.HistoryLimit)
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be positive")
	}
	if c.ScreeningConcurrency < 1 {
		return fmt.Errorf("config error: 'screening_concurrency' must be at least 1")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UseDatabase reports whether a PostgreSQL URL is configured.
func (c *Config) UseDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}
