package memorycache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(&Config{MaxEntries: 16, DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "key1", "value1", time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	value, found := c.Get(ctx, "key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value1" {
		t.Errorf("expected value1, got %v", value)
	}

	if _, found := c.Get(ctx, "nonexistent"); found {
		t.Error("expected not to find nonexistent key")
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	c := New(&Config{MaxEntries: 16, DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "key1", "value1", 10*time.Millisecond); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get(ctx, "key1"); found {
		t.Error("expected key1 to be expired")
	}
}

func TestCache_ZeroTTLUsesDefault(t *testing.T) {
	c := New(&Config{MaxEntries: 16, DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "key1", "value1", 0); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if _, found := c.Get(ctx, "key1"); !found {
		t.Error("expected key1 to live for the default TTL")
	}
}

func TestCache_LRUEviction(t *testing.T) {
	c := New(&Config{MaxEntries: 2, DefaultTTL: time.Minute})
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)

	// Touch "a" so "b" becomes least recently used
	c.Get(ctx, "a")

	c.Set(ctx, "c", 3, time.Minute)

	if _, found := c.Get(ctx, "b"); found {
		t.Error("expected b to be evicted")
	}
	if _, found := c.Get(ctx, "a"); !found {
		t.Error("expected a to survive eviction")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New(&Config{MaxEntries: 16, DefaultTTL: time.Minute})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		c.Set(ctx, fmt.Sprintf("key%d", i), i, time.Minute)
	}

	if err := c.Delete(ctx, "key0"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, found := c.Get(ctx, "key0"); found {
		t.Error("expected key0 to be deleted")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache after clear, got %d entries", c.Len())
	}
}

func TestCache_Metrics(t *testing.T) {
	c := New(&Config{MaxEntries: 16, DefaultTTL: time.Minute})
	ctx := context.Background()

	c.Set(ctx, "key1", "value1", time.Minute)
	c.Get(ctx, "key1")
	c.Get(ctx, "key1")
	c.Get(ctx, "missing")

	m := c.Metrics()
	if m.Hits != 2 {
		t.Errorf("expected 2 hits, got %d", m.Hits)
	}
	if m.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", m.Misses)
	}
	if rate := m.HitRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("expected hit rate ~0.666, got %f", rate)
	}
}
