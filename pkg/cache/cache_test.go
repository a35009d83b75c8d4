package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/crossred/crossred/pkg/cache"
)

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := cache.NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("NullCache.Get should always miss")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crossred-cache")
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "graph-1", []byte("order-data"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "graph-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if string(data) != "order-data" {
		t.Fatalf("Get data = %q, want %q", data, "order-data")
	}

	if err := c.Delete(ctx, "graph-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "graph-1"); ok {
		t.Fatal("expected a miss after Delete")
	}
}

func TestFileCacheExpiredEntryIsAMiss(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crossred-cache")
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "stale", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "stale"); ok {
		t.Fatal("expected expired entry to be a miss")
	}
}

func TestDefaultKeyerIsStableAndSensitive(t *testing.T) {
	keyer := cache.DefaultKeyer{}
	buf := []int32{2, 1, 2, 1, 3}

	k1 := keyer.Key(1, 2, 0, buf, 0)
	k2 := keyer.Key(1, 2, 0, buf, 0)
	if k1 != k2 {
		t.Fatalf("DefaultKeyer.Key is not stable: %q != %q", k1, k2)
	}

	k3 := keyer.Key(1, 2, 0, buf, 4)
	if k1 == k3 {
		t.Fatal("DefaultKeyer.Key should change when passes changes")
	}
}
