// Package cache provides pluggable byte caches for compiled formats and
// parse results.
//
// Backends:
//   - MemoryCache: in-process, used for compiled-format reuse
//   - FileCache: JSON entries under a hashed directory layout (CLI default)
//   - RedisCache: shared result cache for serve mode
//   - NullCache: caching disabled
//
// Keys are derived with [FormatKey] and [ResultKey] so all backends agree
// on the keyspace.
package cache

import (
	"context"
	"time"

	"github.com/a-detiste/parse-type/pkg/convert"
)

// DefaultTTL is the default lifetime of cached parse results.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// FormatKey derives the cache key for a compiled format: the format
// source plus the full type definitions it can see. Keying on the
// definitions rather than the type names means a replaced definition
// with a changed pattern gets a fresh key, so stale compilations are
// never served. encoding/json writes map keys in sorted order, which
// keeps the key stable across requests.
func FormatKey(format string, types map[string]convert.TypeDef) string {
	return hashKey("format", format, types)
}

// ResultKey derives the cache key for a parse result.
// Mode is one of "parse", "search", "findall". The type definitions
// are part of the key for the same reason as in [FormatKey].
func ResultKey(format, text, mode string, types map[string]convert.TypeDef) string {
	return hashKey("result", format, text, mode, types)
}

// SchemaKey derives the cache key for a stored schema body.
func SchemaKey(name string) string {
	return hashKey("schema", name)
}
