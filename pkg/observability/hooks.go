// Package observability provides hooks for progress reporting and metrics.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific reporting backends. Consumers can register hooks
// at startup to receive events about engine phases and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the engine core free of any concrete reporting mechanism: the
// CLI renders hook events as a live progress display, the API server logs
// them, and tests register recording hooks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Engine().OnPhaseStart(ctx, observability.PhaseSort)
//	// ... sort rows ...
//	observability.Engine().OnPhaseComplete(ctx, observability.PhaseSort, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Engine phase names emitted during a run.
const (
	PhaseRotate    = "rotate"
	PhaseIntervals = "intervals"
	PhaseEffect    = "effect"
	PhaseSort      = "sort"
	PhaseRestore   = "restore"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the sorting engine.
type EngineHooks interface {
	// OnPhaseStart records the start of a pipeline phase.
	OnPhaseStart(ctx context.Context, phase string)

	// OnPhaseProgress records partial completion of a phase.
	// ratio is in [0,1] and is monotonically non-decreasing within a phase.
	OnPhaseProgress(ctx context.Context, phase string, ratio float64)

	// OnPhaseComplete records the end of a phase, with its duration and
	// terminal error (nil on success).
	OnPhaseComplete(ctx context.Context, phase string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnPhaseStart(context.Context, string)                          {}
func (NoopEngineHooks) OnPhaseProgress(context.Context, string, float64)              {}
func (NoopEngineHooks) OnPhaseComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
}
