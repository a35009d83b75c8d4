package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Sweep hooks
	s := NoopSweepHooks{}
	s.OnSweepStart(ctx, 3, 10, 12)
	s.OnRankAccepted(ctx, 1, 2, 1)
	s.OnSweepComplete(ctx, 4, 3, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "reorder")
	c.OnCacheMiss(ctx, "reorder")
	c.OnCacheSet(ctx, "reorder", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/reorder")
	h.OnResponse(ctx, "POST", "/v1/reorder", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/reorder", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Sweep() should return NoopSweepHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customSweep := &testSweepHooks{}
	SetSweepHooks(customSweep)
	if Sweep() != customSweep {
		t.Error("SetSweepHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Reset() should restore NoopSweepHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSweepHooks{}
	SetSweepHooks(custom)

	// Setting nil should be ignored
	SetSweepHooks(nil)

	if Sweep() != custom {
		t.Error("SetSweepHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSweepHooks struct{ NoopSweepHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
