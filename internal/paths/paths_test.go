// internal/paths/paths_test.go
//
// Unit-tests for root discovery.
//
// Run: go test ./internal/paths -v

package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoot_EnvOverrideWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRoot, dir)

	if got := Root(); got != dir {
		t.Fatalf("Root() = %q, want %q", got, dir)
	}
	want := filepath.Join(dir, "conf", "application.json")
	if got := AppConfig(); got != want {
		t.Fatalf("AppConfig() = %q, want %q", got, want)
	}
}

func TestRoot_ClimbsToApplicationFile(t *testing.T) {
	t.Setenv(EnvRoot, "")

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "application.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write application.json: %v", err)
	}
	deep := filepath.Join(root, "cmd", "agent")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("mkdir deep: %v", err)
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(deep); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	got, err := filepath.EvalSymlinks(Root())
	if err != nil {
		t.Fatalf("eval got: %v", err)
	}
	want, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("eval want: %v", err)
	}
	if got != want {
		t.Fatalf("Root() = %q, want climb result %q", got, want)
	}
}

func TestLayoutHelpers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRoot, dir)

	if got := LogDir(); got != filepath.Join(dir, "logs") {
		t.Fatalf("LogDir() = %q", got)
	}
	if got := SpoolDir(); got != filepath.Join(dir, "spool") {
		t.Fatalf("SpoolDir() = %q", got)
	}
}
