package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("unexpected hit before Set")
	}

	// Set then Get
	if err := c.Set(ctx, "layout:abc", []byte(`{"crossings":0}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != `{"crossings":0}` {
		t.Errorf("Get = %q hit=%v, want stored data", data, hit)
	}

	// Delete then miss
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("hit after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "never-stored"); err != nil {
		t.Errorf("Delete on missing key: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Entry with an already-past expiry reads as miss
	if err := c.Set(ctx, "stale", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("expired entry should be a miss")
	}

	// Zero TTL never expires
	if err := c.Set(ctx, "pinned", []byte("y"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "pinned"); !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Corrupt the entry on disk; Get must treat it as a miss, not an error.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get on corrupt entry: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey should include options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{NodeSpacing: 250, LayerSeparation: 200, Iterations: 8})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{NodeSpacing: 100, LayerSeparation: 200, Iterations: 8})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// Same inputs give the same key
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{NodeSpacing: 250, LayerSeparation: 200, Iterations: 8}) {
		t.Error("LayoutKey should be deterministic")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "client:123:")

	key := scoped.LayoutKey("hash", LayoutKeyOpts{})
	if len(key) < 11 || key[:11] != "client:123:" {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}
	if key[11:] != inner.LayoutKey("hash", LayoutKeyOpts{}) {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if len(key) < 7 || key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")

	// Non-nil error is wrapped
	err := Retryable(base)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	fatal := errors.New("bad input")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return fatal
	})
	if err != fatal {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
