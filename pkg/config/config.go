// Package config loads pedigraph settings from a TOML file.
//
// Configuration is optional: every field has a working default, and CLI
// flags override file values. The default location is
// ~/.config/pedigraph/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pedigraph/pedigraph/pkg/lineage"
)

// Config is the full application configuration.
type Config struct {
	// MaxGenerations is the default ancestor traversal depth.
	MaxGenerations int `toml:"max_generations"`

	// MinCOI is the smallest coefficient shown in survey output.
	MinCOI float64 `toml:"min_coi"`

	Priority PriorityConfig `toml:"priority"`
	Server   ServerConfig   `toml:"server"`
}

// PriorityConfig holds the brick-wall research-priority thresholds.
type PriorityConfig struct {
	CloseGen        int `toml:"close_generation"`
	MidGen          int `toml:"mid_generation"`
	ManyDescendants int `toml:"many_descendants"`
	SomeDescendants int `toml:"some_descendants"`
}

// Thresholds converts the config into the scoring policy used by the
// lineage package.
func (p PriorityConfig) Thresholds() lineage.PriorityThresholds {
	return lineage.PriorityThresholds{
		CloseGen:        p.CloseGen,
		MidGen:          p.MidGen,
		ManyDescendants: p.ManyDescendants,
		SomeDescendants: p.SomeDescendants,
	}
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Cache selects the result cache backend: "file", "redis", or "none".
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
	CacheTTL  string `toml:"cache_ttl"` // Go duration string, e.g. "10m"
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		MaxGenerations: lineage.DefaultMaxGenerations,
		MinCOI:         0.001,
		Priority: PriorityConfig{
			CloseGen:        lineage.DefaultThresholds.CloseGen,
			MidGen:          lineage.DefaultThresholds.MidGen,
			ManyDescendants: lineage.DefaultThresholds.ManyDescendants,
			SomeDescendants: lineage.DefaultThresholds.SomeDescendants,
		},
		Server: ServerConfig{
			Addr:      ":8456",
			Cache:     "file",
			RedisAddr: "localhost:6379",
			CacheTTL:  "10m",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pedigraph", "config.toml"), nil
}

// Load reads configuration from path, layered over Default. A missing file
// is not an error; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}
