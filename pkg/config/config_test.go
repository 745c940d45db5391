package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/lineage"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxGenerations != lineage.DefaultMaxGenerations {
		t.Errorf("MaxGenerations = %d, want %d", cfg.MaxGenerations, lineage.DefaultMaxGenerations)
	}
	if cfg.Priority.Thresholds() != lineage.DefaultThresholds {
		t.Errorf("Priority = %+v, want the default scoring policy", cfg.Priority)
	}
	if cfg.Server.Addr == "" || cfg.Server.Cache == "" {
		t.Errorf("Server defaults incomplete: %+v", cfg.Server)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if cfg.MaxGenerations != Default().MaxGenerations {
		t.Error("missing file did not fall back to defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
max_generations = 6
min_coi = 0.01

[priority]
close_generation = 2
mid_generation = 4
many_descendants = 20
some_descendants = 8

[server]
addr = ":9000"
cache = "redis"
redis_addr = "redis.local:6379"
cache_ttl = "5m"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxGenerations != 6 {
		t.Errorf("MaxGenerations = %d, want 6", cfg.MaxGenerations)
	}
	if cfg.MinCOI != 0.01 {
		t.Errorf("MinCOI = %g, want 0.01", cfg.MinCOI)
	}
	want := lineage.PriorityThresholds{CloseGen: 2, MidGen: 4, ManyDescendants: 20, SomeDescendants: 8}
	if cfg.Priority.Thresholds() != want {
		t.Errorf("Priority = %+v, want %+v", cfg.Priority.Thresholds(), want)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Cache != "redis" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_generations = 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxGenerations != 4 {
		t.Errorf("MaxGenerations = %d, want 4", cfg.MaxGenerations)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q, want untouched default", cfg.Server.Addr)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_generations = [broken"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed file returned nil error")
	}
}
