package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/a-detiste/parse-type/pkg/convert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = %v, %v", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if string(data) != "v" {
		t.Errorf("Get(k) = %q, want v", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get(k) found entry after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get(k) returned expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry eviction, want 0", c.Len())
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = %v, %v", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), DefaultTTL); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get(k) = %q, want payload", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get(k) found entry after Delete")
	}

	// Deleting again is not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(absent) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get(k) returned expired entry")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Corrupt the stored file; the entry becomes a miss, not an error.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get(corrupt) = %v, %v, want miss", ok, err)
	}
}

func TestFileCacheShardedLayout(t *testing.T) {
	fc := &FileCache{dir: "/cache"}
	path := fc.path("some-key")

	rel, err := filepath.Rel("/cache", path)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 {
		t.Fatalf("path %q not sharded into subdirectory", path)
	}
	if len(parts[0]) != 2 {
		t.Errorf("shard dir %q, want 2 hex chars", parts[0])
	}
	if !strings.HasSuffix(parts[1], ".json") {
		t.Errorf("entry file %q, want .json suffix", parts[1])
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get() = %v, %v, want miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestKeyDerivation(t *testing.T) {
	types := map[string]convert.TypeDef{
		"Number": {Kind: convert.KindInt, Pattern: `\d+`},
		"Color":  {Kind: convert.KindString, Pattern: "red|green|blue"},
	}

	k1 := FormatKey("{n:Number}", types)
	k2 := FormatKey("{n:Number}", map[string]convert.TypeDef{
		"Color":  {Kind: convert.KindString, Pattern: "red|green|blue"},
		"Number": {Kind: convert.KindInt, Pattern: `\d+`},
	})
	if k1 != k2 {
		t.Error("FormatKey depends on map insertion order")
	}
	if !strings.HasPrefix(k1, "format:") {
		t.Errorf("FormatKey = %q, want format: prefix", k1)
	}

	// Different registries produce different keys for the same source.
	if k1 == FormatKey("{n:Number}", nil) {
		t.Error("FormatKey ignores type definitions")
	}

	// Same type names with a changed pattern must change the key, or a
	// replaced definition would keep hitting the old compilation.
	changed := map[string]convert.TypeDef{
		"Number": {Kind: convert.KindInt, Pattern: `\d{2}`},
		"Color":  {Kind: convert.KindString, Pattern: "red|green|blue"},
	}
	if k1 == FormatKey("{n:Number}", changed) {
		t.Error("FormatKey ignores pattern changes")
	}

	r1 := ResultKey("{n:Number}", "42", "parse", types)
	if r1 == ResultKey("{n:Number}", "42", "search", types) {
		t.Error("ResultKey ignores mode")
	}
	if r1 == ResultKey("{n:Number}", "42", "parse", changed) {
		t.Error("ResultKey ignores pattern changes")
	}
	if !strings.HasPrefix(r1, "result:") {
		t.Errorf("ResultKey = %q, want result: prefix", r1)
	}

	if !strings.HasPrefix(SchemaKey("logs"), "schema:") {
		t.Errorf("SchemaKey = %q, want schema: prefix", SchemaKey("logs"))
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("data"))
	if len(h) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h))
	}
	if h != Hash([]byte("data")) {
		t.Error("Hash not deterministic")
	}
	if h == Hash([]byte("other")) {
		t.Error("Hash collision on different inputs")
	}
}
