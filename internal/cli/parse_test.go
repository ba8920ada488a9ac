package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFileTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadTextArgument(t *testing.T) {
	got, err := readText("plain text")
	if err != nil {
		t.Fatalf("readText() error: %v", err)
	}
	if got != "plain text" {
		t.Errorf("readText() = %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Ada", "Ada"},
		{"int64", int64(42), "42"},
		{"float", 3.14, "3.14"},
		{"timestamp", ts, "2024-01-15T10:30:00Z"},
		{"list", []any{int64(1), int64(2)}, "[1, 2]"},
		{"nested list", []any{[]any{int64(1)}}, "[[1]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	// Absent optional values render as a dimmed marker.
	if !strings.Contains(formatValue(nil), "absent") {
		t.Errorf("formatValue(nil) = %q, want absent marker", formatValue(nil))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCacheUsage(t *testing.T) {
	dir := t.TempDir()

	// Missing directories count as empty.
	count, size, err := cacheUsage(dir + "/nope")
	if err != nil || count != 0 || size != 0 {
		t.Errorf("cacheUsage(missing) = %d, %d, %v", count, size, err)
	}

	writeFileTree(t, dir, map[string]string{
		"ab/one.json": "12345",
		"cd/two.json": "678",
	})

	count, size, err = cacheUsage(dir)
	if err != nil {
		t.Fatalf("cacheUsage() error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size != 8 {
		t.Errorf("size = %d, want 8", size)
	}
}
