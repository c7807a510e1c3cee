package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/joho/godotenv"
)

// SupportedModels lists the forecast models the service can prepare initial
// conditions for. The name selects which template file is addressed under the
// cache root; it has no other meaning here.
var SupportedModels = []string{
	"panguweather",
	"fourcastnet_v2",
	"graphcast",
}

// IsSupportedModel reports whether name is a known forecast model.
func IsSupportedModel(name string) bool {
	return slices.Contains(SupportedModels, name)
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	CacheRoot       string
	LogLevel        string
	LogFormat       string
	MetricsAddr     string // empty disables the metrics listener
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is merged in first when
// present.
func Load() (*Config, error) {
	// Optional; deployment environments set real variables instead.
	_ = godotenv.Load()

	shutdownStr := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownStr)
	if err != nil || shutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", shutdownStr)
	}

	cfg := &Config{
		CacheRoot:       envOrDefault("CACHE_ROOT", "/cache"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.CacheRoot == "" {
		return nil, errors.New("CACHE_ROOT is required")
	}

	return cfg, nil
}

// TemplatePath returns the expected location of the per-model template file
// under the cache root.
func (c *Config) TemplatePath(model string) string {
	return filepath.Join(c.CacheRoot, "templates", model+".grid")
}

// OutputPath returns the full path for writing a remapped output file for one
// model run.
func (c *Config) OutputPath(model string, init time.Time) string {
	filename := fmt.Sprintf("%s.%s.grid", model, init.Format("200601021504"))
	return filepath.Join(c.CacheRoot, "output", filename)
}

// GDASObjectName generates the object name of the GDAS 0-hour atmosphere
// analysis for a model cycle. That analysis carries the comprehensive field
// set we cull the source records from.
func GDASObjectName(epoch time.Time) string {
	hh := epoch.Format("15")
	return fmt.Sprintf("gdas.%s/%s/atmos/gdas.t%sz.pgrb2.0p25.f000",
		epoch.Format("20060102"), hh, hh)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
