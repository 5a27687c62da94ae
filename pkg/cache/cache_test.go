package cache

import (
	"context"
	"testing"
	"time"
)

func TestHashStable(t *testing.T) {
	a := Hash([]byte("flowchart TD\nA --> B"))
	b := Hash([]byte("flowchart TD\nA --> B"))
	if a != b {
		t.Fatalf("hash not stable: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Fatal("distinct inputs share a hash")
	}
}

func TestRenderKey(t *testing.T) {
	h := Hash([]byte("x"))
	if RenderKey(h, false) == RenderKey(h, true) {
		t.Fatal("framed and bare output share a cache key")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v", found, err)
	}

	if err := c.Set(ctx, "k", []byte("rendered"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, found, err := c.Get(ctx, "k")
	if err != nil || !found || string(data) != "rendered" {
		t.Fatalf("Get() = %q found=%v err=%v", data, found, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Fatal("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete(missing) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found, err := c.Get(ctx, "k"); err != nil || found {
		t.Fatalf("expired entry: found=%v err=%v", found, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found, err := c.Get(ctx, "k"); err != nil || found {
		t.Fatalf("null cache stored a value: found=%v err=%v", found, err)
	}
}
