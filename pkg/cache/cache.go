// Package cache provides result caching for sorted images.
//
// Three backends share one interface: a file cache for CLI usage, a Redis
// cache for the API server, and a null cache for disabling caching entirely.
// Keys are derived from a SHA-256 digest of the source image bytes, the full
// parameter set and the seed, so a cache hit is guaranteed to be the exact
// output the engine would recompute.
package cache

import (
	"context"
	"time"

	"github.com/AutumnsGrove/Pixelsorting/pkg/observability"
)

// Cache stores encoded results keyed by content digest.
type Cache interface {
	// Get retrieves a value. The second return reports presence; an absent
	// key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL; a zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Instrumented wraps a cache with observability hook reporting.
type Instrumented struct {
	inner   Cache
	keyType string
}

// NewInstrumented wraps a cache; keyType labels hook events (e.g. "result").
func NewInstrumented(inner Cache, keyType string) *Instrumented {
	return &Instrumented{inner: inner, keyType: keyType}
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, ok, err
}

func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *Instrumented) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Instrumented)(nil)
