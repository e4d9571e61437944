package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is the in-process fallback used when Redis is not
// configured. Windows reset lazily on access.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// NewInMemory builds an in-memory limiter.
func NewInMemory(window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Allow increments the counter and checks the limit.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.entry(key)
	entry.count++
	return Decision{Allowed: entry.count <= int64(limit), ResetAt: entry.resetAt}, nil
}

// Peek checks the counter without incrementing.
func (l *MemoryLimiter) Peek(_ context.Context, key string, limit int) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.entry(key)
	return Decision{Allowed: entry.count < int64(limit), ResetAt: entry.resetAt}, nil
}

// Hit increments the counter unconditionally.
func (l *MemoryLimiter) Hit(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(key).count++
	return nil
}

func (l *MemoryLimiter) entry(key string) *memoryEntry {
	now := l.now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(l.window)}
		l.entries[key] = entry
	}
	return entry
}
