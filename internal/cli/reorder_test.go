package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func TestReorderCmdRunsAgainstHarnessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	contents := "2,4,2\n2,1,2\n2,3,4\n2,1,4,1,2,3,1\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("XDG_CACHE_HOME", dir)

	cmd := newReorderCmd()
	cmd.SetArgs([]string{path})
	var out bytes.Buffer
	cmd.SetOut(&out)

	ctx := withLogger(context.Background(), newLogger(&out, charmlog.ErrorLevel))
	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestReorderCmdMissingFile(t *testing.T) {
	cmd := newReorderCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.txt")})

	ctx := withLogger(context.Background(), newLogger(new(bytes.Buffer), charmlog.ErrorLevel))
	cmd.SetContext(ctx)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing harness file")
	}
}
