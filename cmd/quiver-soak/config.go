package main

import (
	"errors"
	"time"
)

// Config validation errors
var (
	ErrInvalidWorkers      = errors.New("workers must be positive")
	ErrInvalidOpsPerWorker = errors.New("ops_per_worker must be positive")
	ErrInvalidPushPercent  = errors.New("push_percent must be between 1 and 99")
	ErrInvalidMetricsAddr  = errors.New("metrics_addr cannot be empty")
	ErrInvalidMaxRuntime   = errors.New("max_runtime must be positive")
	ErrInvalidLogFormat    = errors.New("log_format must be 'json' or 'text'")
	ErrInvalidLogLevel     = errors.New("log_level must be debug, info, warn, or error")
)

// Config holds the soak-run parameters, populated from the environment with
// the QUIVER prefix (e.g. QUIVER_WORKERS=32).
type Config struct {
	Workers      int           `envconfig:"WORKERS" default:"8"`
	OpsPerWorker int           `envconfig:"OPS_PER_WORKER" default:"100000"`
	PushPercent  int           `envconfig:"PUSH_PERCENT" default:"60"`
	MetricsAddr  string        `envconfig:"METRICS_ADDR" default:"0.0.0.0:9090"`
	MaxRuntime   time.Duration `envconfig:"MAX_RUNTIME" default:"2m"`
	LogFormat    string        `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if cfg.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if cfg.OpsPerWorker <= 0 {
		return ErrInvalidOpsPerWorker
	}
	if cfg.PushPercent < 1 || cfg.PushPercent > 99 {
		return ErrInvalidPushPercent
	}
	if cfg.MetricsAddr == "" {
		return ErrInvalidMetricsAddr
	}
	if cfg.MaxRuntime <= 0 {
		return ErrInvalidMaxRuntime
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" && cfg.LogLevel != "error" {
		return ErrInvalidLogLevel
	}
	return nil
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Workers:      8,
		OpsPerWorker: 100000,
		PushPercent:  60,
		MetricsAddr:  "0.0.0.0:9090",
		MaxRuntime:   2 * time.Minute,
		LogFormat:    "json",
		LogLevel:     "info",
	}
}
