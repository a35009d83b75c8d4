// Command crossred runs the layered-graph crossing-reduction engine from the
// command line: a harness-compatible reorder command, an HTTP server, and
// cache management.
package main

import (
	"fmt"
	"os"

	"github.com/crossred/crossred/internal/cli"
)

// version, commit, and date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
