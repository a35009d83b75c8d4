// Package config loads crossred's server configuration from a TOML file,
// following the teacher's convention of BurntSushi/toml for manifest-style
// parsing (see pkg/deps/python's poetry.lock reader).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for `crossred serve`.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig controls the HTTP API listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// ShutdownTimeout is a duration string, e.g. "5s".
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration parses ServerConfig.ShutdownTimeout, falling back
// to 5s if it is empty or malformed.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(s.ShutdownTimeout); err == nil {
		return d
	}
	return 5 * time.Second
}

// CacheConfig selects and configures the reorder-result cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the cache directory for the "file" backend.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port for the "redis" backend.
	RedisAddr string `toml:"redis_addr"`
	// TTL is a duration string, e.g. "24h".
	TTL string `toml:"ttl"`
}

// TTLDuration parses CacheConfig.TTL, falling back to 24h if it is empty or
// malformed.
func (c CacheConfig) TTLDuration() time.Duration {
	if d, err := time.ParseDuration(c.TTL); err == nil {
		return d
	}
	return 24 * time.Hour
}

// StoreConfig selects and configures the run-history backend.
type StoreConfig struct {
	// Backend is one of "mongo" or "memory".
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the configuration `crossred serve` uses when no config
// file is supplied: an in-process file cache and in-memory run history.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "5s",
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     "24h",
		},
		Store: StoreConfig{
			Backend: "memory",
		},
	}
}

// Load reads and parses a TOML config file at path, starting from [Default]
// so unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("stat config file %q: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file %q: %w", path, err)
	}
	return cfg, nil
}
