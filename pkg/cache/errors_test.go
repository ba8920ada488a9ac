package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}

	base := errors.New("boom")
	wrapped := Retryable(base)

	if !IsRetryable(wrapped) {
		t.Error("IsRetryable(wrapped) = false")
	}
	if IsRetryable(base) {
		t.Error("IsRetryable(base) = true")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped does not unwrap to base")
	}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", wrapped.Error())
	}

	// Retryable survives further wrapping.
	if !IsRetryable(fmt.Errorf("context: %w", wrapped)) {
		t.Error("IsRetryable lost through fmt.Errorf wrapping")
	}
}

func TestRetryWithBackoffNonRetryable(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("RetryWithBackoff() returned nil for a failing fn")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for non-retryable error", calls)
	}
}

func TestRetryWithBackoffSuccess(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("RetryWithBackoff() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("RetryWithBackoff() waited despite cancelled context")
	}
}

func TestRedisCacheRetriesBackendErrors(t *testing.T) {
	// An unreachable backend with a cancelled context: the retry loop
	// must give up on the context instead of sleeping through backoff.
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Get() with an unreachable backend returned nil error")
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err == nil {
		t.Error("Set() with an unreachable backend returned nil error")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("redis retries waited despite cancelled context")
	}
}
