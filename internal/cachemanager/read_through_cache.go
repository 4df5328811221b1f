package cachemanager

import (
	"context"
	"time"
)

// LoadFunc computes the value for input on a cache miss.
type LoadFunc[V, I any] func(ctx context.Context, input I) (V, error)

// ReadThrough serves values from a Manager and falls back to a loader on a
// miss. Loader errors are returned as-is and never cached.
type ReadThrough[V, I any] struct {
	cache    Manager[V]
	load     LoadFunc[V, I]
	disabled bool
}

// NewReadThrough wires cache in front of load. When disabled is true every
// Get calls load directly.
func NewReadThrough[V, I any](cache Manager[V], load LoadFunc[V, I], disabled bool) *ReadThrough[V, I] {
	return &ReadThrough[V, I]{cache: cache, load: load, disabled: disabled}
}

// Get returns the cached value for key, loading it from input on a miss.
func (r *ReadThrough[V, I]) Get(ctx context.Context, key string, input I, ttl time.Duration) (V, error) {
	if r.disabled {
		return r.load(ctx, input)
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		return v, nil
	}

	v, err := r.load(ctx, input)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, ttl)
	return v, nil
}

// Invalidate drops every cached value.
func (r *ReadThrough[V, I]) Invalidate(ctx context.Context) {
	r.cache.Flush(ctx)
}
