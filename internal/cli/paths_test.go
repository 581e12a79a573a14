package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// testCLI returns a CLI whose config keeps the cache and catalog under a
// temporary directory.
func testCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := fmt.Sprintf(`
[cache]
dir = %q

[catalog]
backend = "badger"
path = %q
`, filepath.Join(dir, "cache"), filepath.Join(dir, "catalog"))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.ConfigPath = path
	return c, dir
}

func TestCacheDirFromConfig(t *testing.T) {
	c, dir := testCLI(t)
	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(dir, "cache"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	c := New(io.Discard, LogInfo)
	c.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestConfigPathFlag(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.ConfigPath = "/etc/chromatic.toml"
	if got := c.configPath(); got != "/etc/chromatic.toml" {
		t.Errorf("configPath() = %q, want the override", got)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`basis = `), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.ConfigPath = path
	if _, err := c.cacheDir(); ExitCode(err) != ExitUsage {
		t.Errorf("cacheDir() error = %v, want a usage error", err)
	}
}
