package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	base, err := os.UserCacheDir()
	if err != nil {
		t.Fatalf("UserCacheDir() error: %v", err)
	}
	if dir != filepath.Join(base, appName) {
		t.Errorf("cacheDir() = %q, want %q", dir, filepath.Join(base, appName))
	}
}

func TestLoadRegistryEmptyPath(t *testing.T) {
	reg, defs, err := loadRegistry("")
	if err != nil {
		t.Fatalf("loadRegistry(\"\") error: %v", err)
	}
	if reg != nil {
		t.Error("loadRegistry(\"\") returned a registry, want nil")
	}
	if defs != nil {
		t.Error("loadRegistry(\"\") returned definitions, want nil")
	}
}

func TestLoadRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.toml")
	def := `
[types.Color]
kind = "string"
pattern = "red|green|blue"
`
	if err := os.WriteFile(path, []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, defs, err := loadRegistry(path)
	if err != nil {
		t.Fatalf("loadRegistry() error: %v", err)
	}
	if _, ok := reg.Lookup("Color"); !ok {
		t.Error("Color not registered")
	}
	if got := defs["Color"].Pattern; got != "red|green|blue" {
		t.Errorf("defs[Color].Pattern = %q, want the file's pattern", got)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, _, err := loadRegistry(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("loadRegistry(missing) did not error")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"parse", "types", "viz", "explore", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
