package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crossred/crossred/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.Default()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "file" {
		t.Fatalf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Store.Backend != "memory" {
		t.Fatalf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("Load(\"\") = %+v, want Default()", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossred.toml")
	contents := `
[server]
addr = ":9090"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
database = "crossred"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Fatalf("Cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.Database != "crossred" {
		t.Fatalf("Store = %+v", cfg.Store)
	}
	// unset field keeps its default
	if cfg.Server.ShutdownTimeoutDuration() != 5*time.Second {
		t.Fatalf("ShutdownTimeoutDuration() = %v, want default 5s", cfg.Server.ShutdownTimeoutDuration())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
