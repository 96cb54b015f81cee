package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is the in-process counterpart of the redis limiter, used
// when the gateway runs with the memory cache. Counters for past windows
// are pruned on rollover.
type MemoryLimiter struct {
	mu     sync.Mutex
	hits   map[string]int64
	start  time.Time
	max    int64
	window time.Duration
}

// NewMemoryLimiter creates an in-process limiter.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		hits:   make(map[string]int64),
		max:    int64(max),
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !winStart.Equal(l.start) {
		l.hits = make(map[string]int64)
		l.start = winStart
	}

	l.hits[key]++
	hits := l.hits[key]
	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:   hits <= l.max,
		Remaining: remaining,
	}
	if !res.Allowed {
		res.RetryAfter = winStart.Add(l.window).Sub(now)
	}
	return res, nil
}
