// Package dedupe tracks which candidate ids a selection has already admitted.
package dedupe

import "sync"

// Tracker records admitted ids so a candidate is scored at most once.
type Tracker interface {
	// SeenAndRecord reports whether id was already admitted and records it
	// when it was not. The check and the record happen under one lock.
	SeenAndRecord(id string) bool
}

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithCapacity pre-sizes the tracker for n ids.
func WithCapacity(n int) Option {
	return func(t *inMemoryTracker) {
		if n > 0 {
			t.capacity = n
		}
	}
}

type inMemoryTracker struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	capacity int
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{}
	for _, opt := range opts {
		opt(t)
	}
	t.seen = make(map[string]struct{}, t.capacity)
	return t
}

func (t *inMemoryTracker) SeenAndRecord(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[id]; ok {
		return true
	}
	t.seen[id] = struct{}{}
	return false
}
