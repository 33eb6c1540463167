// Package cache provides the injectable read-through cache used for
// dashboard task lists. Implementations are safe for concurrent use, apply a
// fixed TTL to every entry, bound the number of entries, and support per-key
// invalidation.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Options are shared by every implementation.
type Options struct {
	TTL        time.Duration
	MaxEntries int
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 30 * time.Second
	}
	if o.MaxEntries <= 0 {
		o.MaxEntries = 1000
	}
	return o
}
