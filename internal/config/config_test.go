package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "4000" {
		t.Fatalf("expected default port 4000, got %q", cfg.Port)
	}
	if cfg.FPL.Timeout != 2*time.Minute {
		t.Fatalf("expected 2m upstream timeout, got %v", cfg.FPL.Timeout)
	}
	if cfg.Cache.BootstrapTTL != 15*time.Minute || cfg.Cache.ConfigTTL != 30*time.Minute {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.ConfigStore.Backend != "fs" || cfg.ConfigStore.Path != "data" {
		t.Fatalf("unexpected store defaults: %+v", cfg.ConfigStore)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS defaults: %v", cfg.AllowedOrigins)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("metrics must default to disabled")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("FPL_BASE_URL", "https://mirror.example/api")
	t.Setenv("FPL_TIMEOUT", "30s")
	t.Setenv("BOOTSTRAP_CACHE_TTL", "5m")
	t.Setenv("CONFIG_STORE", "redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ADMIN_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if cfg.FPL.BaseURL != "https://mirror.example/api" || cfg.FPL.Timeout != 30*time.Second {
		t.Fatalf("unexpected upstream config: %+v", cfg.FPL)
	}
	if cfg.Cache.BootstrapTTL != 5*time.Minute {
		t.Fatalf("expected TTL override, got %v", cfg.Cache.BootstrapTTL)
	}
	if cfg.ConfigStore.Backend != "redis" {
		t.Fatalf("expected redis backend, got %q", cfg.ConfigStore.Backend)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.AdminToken != "tok" {
		t.Fatalf("expected admin token, got %q", cfg.AdminToken)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("FPL_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for malformed duration")
	}
}
