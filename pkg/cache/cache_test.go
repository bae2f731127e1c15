package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("NullCache should never hit")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	want := []byte(`{"scene":"Campaign of 1812"}`)
	if err := c.Set(ctx, "layout:abc", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(ctx, "never-set")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("expected cache miss for unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("expected expired entry to miss")
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "forever", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, hit, err := c.Get(ctx, "forever")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Corrupt the entry on disk.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("corrupt entry should count as a miss")
	}
	if _, statErr := os.Stat(fc.path("key")); !os.IsNotExist(statErr) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("deleted key should miss")
	}

	// Deleting again must not error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestFileCacheSharding(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	fc := c.(*FileCache)
	path := fc.path("layout:abc")
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		t.Fatalf("Rel() error = %v", err)
	}

	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 {
		t.Fatalf("path %q should have one shard directory", rel)
	}
	if len(parts[0]) != 2 {
		t.Errorf("shard dir %q should be 2 chars", parts[0])
	}
}

func TestDefaultKeyerDeterministic(t *testing.T) {
	k := NewDefaultKeyer()
	opts := LayoutKeyOpts{RulesHash: "r1", Engine: "v1"}

	a := k.LayoutKey("scene-hash", opts)
	b := k.LayoutKey("scene-hash", opts)
	if a != b {
		t.Errorf("equal inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("key %q should carry the layout prefix", a)
	}
}

func TestDefaultKeyerSensitivity(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.LayoutKey("scene-hash", LayoutKeyOpts{RulesHash: "r1", Engine: "v1"})

	tests := []struct {
		name      string
		sceneHash string
		opts      LayoutKeyOpts
	}{
		{"scene change", "other-hash", LayoutKeyOpts{RulesHash: "r1", Engine: "v1"}},
		{"rules change", "scene-hash", LayoutKeyOpts{RulesHash: "r2", Engine: "v1"}},
		{"engine change", "scene-hash", LayoutKeyOpts{RulesHash: "r1", Engine: "v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.LayoutKey(tt.sceneHash, tt.opts); got == base {
				t.Error("changed input produced the same key")
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:abc:")
	opts := LayoutKeyOpts{RulesHash: "r1", Engine: "v1"}

	got := scoped.LayoutKey("scene-hash", opts)
	want := "tenant:abc:" + inner.LayoutKey("scene-hash", opts)
	if got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	key := scoped.LayoutKey("h", LayoutKeyOpts{})
	if !strings.HasPrefix(key, "p:layout:") {
		t.Errorf("key %q should fall back to the default keyer", key)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("data"))
	b := Hash([]byte("data"))
	if a != b {
		t.Error("Hash() is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("different inputs produced the same hash")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("RetryWithBackoff() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		permanent := errors.New("bad input")
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return permanent
		})
		if !errors.Is(err, permanent) {
			t.Errorf("error = %v, want %v", err, permanent)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("cancelled context aborts backoff", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cctx, func() error {
			return Retryable(errors.New("transient"))
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestIsRetryable(t *testing.T) {
	plain := errors.New("plain")
	if IsRetryable(plain) {
		t.Error("plain error should not be retryable")
	}
	if !IsRetryable(Retryable(plain)) {
		t.Error("wrapped error should be retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}
