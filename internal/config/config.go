// Package config loads runtime configuration from environment variables
// with sensible defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration for the service.
type Config struct {
	Port      string `env:"PORT" envDefault:"4000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Comma-separated origins allowed to call the API; the presentation
	// layer is a browser SPA.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AdminToken string `env:"ADMIN_TOKEN"`

	FPL         FPLConfig
	Cache       CacheConfig
	ConfigStore StoreConfig
	Metrics     MetricsConfig
}

// FPLConfig controls the upstream client.
type FPLConfig struct {
	BaseURL   string `env:"FPL_BASE_URL"`
	UserAgent string `env:"FPL_USER_AGENT"`
	// The upstream is slow around deadlines; the deadline is minutes, not
	// the conventional few seconds.
	Timeout time.Duration `env:"FPL_TIMEOUT" envDefault:"2m"`
}

// CacheConfig controls the cache tiers.
type CacheConfig struct {
	BootstrapTTL time.Duration `env:"BOOTSTRAP_CACHE_TTL" envDefault:"15m"`
	ConfigTTL    time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"30m"`
}

// StoreConfig selects the persisted config-cache backend.
type StoreConfig struct {
	// Backend is fs, redis, or none.
	Backend       string `env:"CONFIG_STORE" envDefault:"fs"`
	Path          string `env:"CONFIG_STORE_PATH" envDefault:"data"`
	RedisAddr     string `env:"CONFIG_STORE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"CONFIG_STORE_REDIS_PASSWORD"`
	RedisDB       int    `env:"CONFIG_STORE_REDIS_DB" envDefault:"0"`
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED" envDefault:"false"`
	Port         string `env:"METRICS_PORT" envDefault:"9090"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"fpl-insights-service"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
