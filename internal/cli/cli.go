// Package cli implements the crossred command-line interface.
//
// This package provides the harness-compatible reorder command, an HTTP
// server command, and cache management commands. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - reorder: run the crossing-reduction engine against a harness file
//   - serve: start the HTTP API
//   - cache: manage the on-disk reorder result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so progress can be reported without
// threading a logger through every function signature.
//
// # Example
//
//	import "github.com/crossred/crossred/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"os"
	"path/filepath"

	"github.com/crossred/crossred/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "crossred"

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/crossred/, or $XDG_CACHE_HOME/crossred if set).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCache builds the reorder-result cache the CLI uses. With noCache set, or
// if the cache directory cannot be resolved, it falls back to a no-op cache
// rather than failing the command outright.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}
