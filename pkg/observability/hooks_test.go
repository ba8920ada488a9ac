package observability

import (
	"context"
	"testing"
	"time"
)

type countingParserHooks struct {
	compiles int
	matches  int
}

func (h *countingParserHooks) OnCompileStart(context.Context, string) { h.compiles++ }
func (h *countingParserHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
}
func (h *countingParserHooks) OnMatchStart(context.Context, string, string) { h.matches++ }
func (h *countingParserHooks) OnMatchComplete(context.Context, string, string, int, time.Duration, error) {
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestSetParserHooks(t *testing.T) {
	hooks := &countingParserHooks{}
	SetParserHooks(hooks)
	defer SetParserHooks(nil)

	ctx := context.Background()
	Parser().OnCompileStart(ctx, "{n:d}")
	Parser().OnMatchStart(ctx, "{n:d}", "parse")

	if hooks.compiles != 1 || hooks.matches != 1 {
		t.Errorf("counts = %d compiles, %d matches, want 1 each", hooks.compiles, hooks.matches)
	}
}

func TestSetCacheHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	SetCacheHooks(hooks)
	defer SetCacheHooks(nil)

	ctx := context.Background()
	CacheEvents().OnCacheHit(ctx, "result")
	CacheEvents().OnCacheMiss(ctx, "result")
	CacheEvents().OnCacheSet(ctx, "result", 128)

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("counts = %+v, want 1 each", hooks)
	}
}

func TestNilRestoresNoop(t *testing.T) {
	SetParserHooks(&countingParserHooks{})
	SetParserHooks(nil)

	if _, ok := Parser().(NoopParserHooks); !ok {
		t.Errorf("Parser() = %T after reset, want NoopParserHooks", Parser())
	}

	SetHTTPHooks(nil)
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T after reset, want NoopHTTPHooks", HTTP())
	}

	SetCacheHooks(nil)
	if _, ok := CacheEvents().(NoopCacheHooks); !ok {
		t.Errorf("CacheEvents() = %T after reset, want NoopCacheHooks", CacheEvents())
	}
}
