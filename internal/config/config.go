// Package config loads refq configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the refq configuration.
type Config struct {
	// BackupNamespace is the branch prefix reserved for automatic safety
	// copies. Branches under it are excluded from listings by default.
	BackupNamespace string `toml:"backup_namespace"`

	// WIPPattern is the ref pattern queried for WIP branches.
	WIPPattern string `toml:"wip_pattern"`

	// ProbeTimeout bounds each per-worktree dirty-status probe.
	ProbeTimeout duration `toml:"probe_timeout"`

	// ProbeConcurrency bounds the number of concurrent dirty-status probes.
	ProbeConcurrency int `toml:"probe_concurrency"`
}

// duration wraps time.Duration for TOML string parsing ("5s", "500ms").
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// ProbeTimeoutDuration returns the probe timeout as a time.Duration.
func (c *Config) ProbeTimeoutDuration() time.Duration {
	return time.Duration(c.ProbeTimeout)
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BackupNamespace:  "hug-backups/",
		WIPPattern:       "refs/heads/WIP/",
		ProbeTimeout:     duration(5 * time.Second),
		ProbeConcurrency: 8,
	}
}

// configPath returns the path to the config file.
// REFQ_CONFIG overrides the default location.
func configPath() (string, error) {
	if p := os.Getenv("REFQ_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hug", "refq.toml"), nil
}

// Load reads config from ~/.config/hug/refq.toml (or $REFQ_CONFIG).
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.ProbeTimeout <= 0 {
		return Default(), fmt.Errorf("probe_timeout must be positive, got %v", time.Duration(cfg.ProbeTimeout))
	}
	if cfg.ProbeConcurrency <= 0 {
		return Default(), fmt.Errorf("probe_concurrency must be positive, got %d", cfg.ProbeConcurrency)
	}

	return cfg, nil
}
