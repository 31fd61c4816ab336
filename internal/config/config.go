// Package config loads the plansearch command configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the command configuration. Every field has a default.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Search  SearchConfig  `yaml:"search"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig tunes each search run.
type SearchConfig struct {
	// Timeout aborts a search after this long. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
	// HeuristicCache is the LRU size in front of the heuristic. Zero
	// disables caching.
	HeuristicCache int `yaml:"heuristic_cache"`
	// Parallel bounds how many problems are solved at once.
	Parallel int `yaml:"parallel"`
	// Progress logs every f-layer boundary.
	Progress bool `yaml:"progress"`
}

// MetricsConfig controls the Prometheus dump written after solving.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Search:  SearchConfig{HeuristicCache: 0, Parallel: 4},
		Metrics: MetricsConfig{Namespace: "plansearch"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (cfg Config) Validate() error {
	var errs []error
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", cfg.Log.Format))
	}
	if cfg.Search.Timeout < 0 {
		errs = append(errs, errors.New("config: search.timeout must not be negative"))
	}
	if cfg.Search.HeuristicCache < 0 {
		errs = append(errs, errors.New("config: search.heuristic_cache must not be negative"))
	}
	if cfg.Search.Parallel < 1 {
		errs = append(errs, errors.New("config: search.parallel must be at least 1"))
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		errs = append(errs, errors.New("config: metrics.namespace is required when metrics are enabled"))
	}
	return errors.Join(errs...)
}
