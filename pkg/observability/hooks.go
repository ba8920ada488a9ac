// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about format compilation, matching,
// cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetParserHooks(&myParserHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Parser().OnMatchStart(ctx, format, mode)
//	// ... match ...
//	observability.Parser().OnMatchComplete(ctx, format, mode, matches, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ParserHooks receives events from format compilation and matching.
type ParserHooks interface {
	// Compile events
	OnCompileStart(ctx context.Context, format string)
	OnCompileComplete(ctx context.Context, format string, fieldCount int, duration time.Duration, err error)

	// Match events. Mode is one of "parse", "search", "findall".
	OnMatchStart(ctx context.Context, format, mode string)
	OnMatchComplete(ctx context.Context, format, mode string, matches int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopParserHooks is a no-op implementation of ParserHooks.
type NoopParserHooks struct{}

func (NoopParserHooks) OnCompileStart(context.Context, string) {}
func (NoopParserHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopParserHooks) OnMatchStart(context.Context, string, string) {}
func (NoopParserHooks) OnMatchComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	parserHooks ParserHooks = NoopParserHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	mu          sync.RWMutex
)

// SetParserHooks registers parser hooks. Pass nil to restore the no-op
// implementation.
func SetParserHooks(h ParserHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopParserHooks{}
	}
	parserHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op
// implementation.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// SetHTTPHooks registers HTTP hooks. Pass nil to restore the no-op
// implementation.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopHTTPHooks{}
	}
	httpHooks = h
}

// Parser returns the registered parser hooks.
func Parser() ParserHooks {
	mu.RLock()
	defer mu.RUnlock()
	return parserHooks
}

// CacheEvents returns the registered cache hooks.
func CacheEvents() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}
