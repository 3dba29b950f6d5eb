package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("unexpected hit in fresh cache")
	}
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v; want value, true", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("hit after delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestHash_Deterministic(t *testing.T) {
	if Hash([]byte("graph")) != Hash([]byte("graph")) {
		t.Error("Hash should be deterministic")
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("different inputs should hash differently")
	}
	if len(Hash(nil)) != 64 {
		t.Errorf("Hash length = %d, want 64", len(Hash(nil)))
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	h := Hash([]byte("graph"))

	if got := k.PlanarityKey(h); !strings.HasPrefix(got, "planarity:") {
		t.Errorf("PlanarityKey = %q", got)
	}
	if k.PlanarityKey(h) == k.EmbeddingKey(h) {
		t.Error("key kinds must not collide")
	}

	scoped := NewScopedKeyer(k, "tenant:42:")
	if got := scoped.EmbeddingKey(h); !strings.HasPrefix(got, "tenant:42:embedding:") {
		t.Errorf("scoped EmbeddingKey = %q", got)
	}
	if got := NewScopedKeyer(nil, "p:").PlanarityKey(h); !strings.HasPrefix(got, "p:planarity:") {
		t.Errorf("nil inner keyer: %q", got)
	}
}

func TestRetryWithBackoff_NonRetryable(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d, want boom after 1 call", err, calls)
	}
}

func TestRetryWithBackoff_Succeeds(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("err=%v calls=%d, want nil after 1 call", err, calls)
	}
}
