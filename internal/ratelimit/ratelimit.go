// Package ratelimit implements a fixed-window request limiter keyed by
// client IP. The window is anchored at a key's first request: the counter
// expires one window after that request and the next one starts a fresh
// window. Counters live in process memory only; a restart resets them.
package ratelimit

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Limiter counts requests per key within a fixed window.
// Construct one at startup and inject it into the handler that needs it.
type Limiter struct {
	limit    int
	window   time.Duration
	counters *gocache.Cache
}

// New creates a limiter allowing limit requests per window per key.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		window:   window,
		counters: gocache.New(window, 2*window),
	}
}

// Allow records one request for key and reports whether it fits the
// current window.
func (l *Limiter) Allow(key string) bool {
	if err := l.counters.Add(key, 1, l.window); err == nil {
		// First request of a fresh window.
		return l.limit >= 1
	}
	n, err := l.counters.IncrementInt(key, 1)
	if err != nil {
		// Counter expired between Add and Increment; start over.
		l.counters.Set(key, 1, l.window)
		return l.limit >= 1
	}
	return n <= l.limit
}

// Remaining reports how many requests key has left in its window.
func (l *Limiter) Remaining(key string) int {
	v, found := l.counters.Get(key)
	if !found {
		return l.limit
	}
	n, ok := v.(int)
	if !ok {
		return l.limit
	}
	if n >= l.limit {
		return 0
	}
	return l.limit - n
}
