package observability

import (
	"context"
	"testing"
	"time"
)

type testEngineHooks struct {
	starts, progresses, completes int
}

func (h *testEngineHooks) OnPhaseStart(context.Context, string)             { h.starts++ }
func (h *testEngineHooks) OnPhaseProgress(context.Context, string, float64) { h.progresses++ }
func (h *testEngineHooks) OnPhaseComplete(context.Context, string, time.Duration, error) {
	h.completes++
}

type testCacheHooks struct {
	hits, misses, sets int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEngineHooks{}
	e.OnPhaseStart(ctx, PhaseRotate)
	e.OnPhaseProgress(ctx, PhaseSort, 0.5)
	e.OnPhaseComplete(ctx, PhaseRestore, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "mask")
	c.OnCacheSet(ctx, "result", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	// Verify defaults are noop
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != EngineHooks(customEngine) {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != CacheHooks(customCache) {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil registrations are ignored
	SetEngineHooks(nil)
	if Engine() != EngineHooks(customEngine) {
		t.Error("SetEngineHooks(nil) should keep existing hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testEngineHooks{}
	SetEngineHooks(h)

	ctx := context.Background()
	Engine().OnPhaseStart(ctx, PhaseIntervals)
	Engine().OnPhaseProgress(ctx, PhaseIntervals, 0.25)
	Engine().OnPhaseProgress(ctx, PhaseIntervals, 0.75)
	Engine().OnPhaseComplete(ctx, PhaseIntervals, time.Millisecond, nil)

	if h.starts != 1 || h.progresses != 2 || h.completes != 1 {
		t.Errorf("events = %d/%d/%d, want 1/2/1", h.starts, h.progresses, h.completes)
	}
}
