package main

import (
	"errors"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := envconfig.Process("QUIVER", &cfg); err != nil {
		t.Fatalf("Failed to process config: %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("Expected default workers=8, got %d", cfg.Workers)
	}
	if cfg.OpsPerWorker != 100000 {
		t.Errorf("Expected default ops_per_worker=100000, got %d", cfg.OpsPerWorker)
	}
	if cfg.PushPercent != 60 {
		t.Errorf("Expected default push_percent=60, got %d", cfg.PushPercent)
	}
	if cfg.MaxRuntime != 2*time.Minute {
		t.Errorf("Expected default max_runtime=2m, got %s", cfg.MaxRuntime)
	}
	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("QUIVER_WORKERS", "32")
	t.Setenv("QUIVER_PUSH_PERCENT", "75")
	t.Setenv("QUIVER_MAX_RUNTIME", "30s")

	var cfg Config
	if err := envconfig.Process("QUIVER", &cfg); err != nil {
		t.Fatalf("Failed to process config: %v", err)
	}

	if cfg.Workers != 32 {
		t.Errorf("Expected workers=32, got %d", cfg.Workers)
	}
	if cfg.PushPercent != 75 {
		t.Errorf("Expected push_percent=75, got %d", cfg.PushPercent)
	}
	if cfg.MaxRuntime != 30*time.Second {
		t.Errorf("Expected max_runtime=30s, got %s", cfg.MaxRuntime)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"negative ops", func(c *Config) { c.OpsPerWorker = -1 }, ErrInvalidOpsPerWorker},
		{"push percent too low", func(c *Config) { c.PushPercent = 0 }, ErrInvalidPushPercent},
		{"push percent too high", func(c *Config) { c.PushPercent = 100 }, ErrInvalidPushPercent},
		{"empty metrics addr", func(c *Config) { c.MetricsAddr = "" }, ErrInvalidMetricsAddr},
		{"zero runtime", func(c *Config) { c.MaxRuntime = 0 }, ErrInvalidMaxRuntime},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidLogFormat},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := ValidateConfig(&cfg); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
