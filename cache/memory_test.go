package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("expected hit with 'v', got %q ok=%v", got, ok)
	}
}

func TestMemoryCache_RejectsInvalidKey(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "  ", []byte("v"), time.Minute); err != ErrInvalidKey {
		t.Errorf("Set(blank key) = %v, want ErrInvalidKey", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected nothing stored, got %d entries", c.Len())
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get(context.Background(), "absent"); ok {
		t.Error("expected miss")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Errorf("expected lazy cleanup after expired read, got %d entries", c.Len())
	}
}

func TestMemoryCache_ZeroTTLNotStored(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected TTL=0 to skip caching")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected deleted key to miss")
	}

	// Idempotent on absent keys.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("delete of absent key errored: %v", err)
	}
}
