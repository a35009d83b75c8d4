package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/crossred/crossred/pkg/store"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	run := &store.Run{
		ID:               "run-1",
		NumNodes:         10,
		NumEdges:         12,
		InitialCrossings: 5,
		FinalCrossings:   1,
		Sweeps:           3,
		Duration:         time.Millisecond * 42,
		Quality:          "balanced",
		CreatedAt:        time.Now(),
	}
	if err := s.Set(ctx, run); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.FinalCrossings != 1 {
		t.Fatalf("Get = %+v, want FinalCrossings=1", got)
	}

	if err := s.Delete(ctx, "run-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil after Delete")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	old := &store.Run{ID: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &store.Run{ID: "fresh", CreatedAt: time.Now()}
	_ = s.Set(ctx, old)
	_ = s.Set(ctx, fresh)

	if err := s.Cleanup(ctx, 24*time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if got, _ := s.Get(ctx, "old"); got != nil {
		t.Fatal("expected old run to be cleaned up")
	}
	if got, _ := s.Get(ctx, "fresh"); got == nil {
		t.Fatal("expected fresh run to survive cleanup")
	}
}
