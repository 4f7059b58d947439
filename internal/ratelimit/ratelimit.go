// Package ratelimit provides a fixed-window request counter. It is an
// injected component rather than package state so a shared store can
// replace it in multi-instance deployments without touching call sites;
// until then the quota degrades to per-instance, never to unlimited.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// FixedWindow counts requests per key within consecutive fixed windows.
// The counter resets when the window expires. Keys are typically
// owner+route. Safe for concurrent use; state is in-memory only.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	length  time.Duration
	now     func() time.Time
	entries map[string]*window
}

// New returns a limiter allowing limit requests per length per key.
func New(limit int, length time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		length:  length,
		now:     time.Now,
		entries: make(map[string]*window),
	}
}

// Allow reports whether another request is admitted for key. When the
// quota is exhausted it returns the time remaining until the window
// resets, suitable for a Retry-After hint.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.Sub(w.start) >= l.length {
		l.entries[key] = &window{count: 1, start: now}
		return true, 0
	}
	if w.count >= l.limit {
		return false, w.start.Add(l.length).Sub(now)
	}
	w.count++
	return true, 0
}
