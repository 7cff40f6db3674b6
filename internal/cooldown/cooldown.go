// Package cooldown provides a per-key rate-limit table with a fixed expiry.
// It is an injected component: callers construct a Table and pass it where
// needed, there is no package-level state.
package cooldown

import (
	"sync"
	"time"
)

// Table tracks the last hit per key. Safe for concurrent use.
type Table struct {
	ttl time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time // injectable clock for tests
}

// New returns a Table with the given expiry.
func New(ttl time.Duration) *Table {
	return &Table{
		ttl:  ttl,
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Hit records an attempt for key. When the key is still cooling down the
// attempt is rejected: limited is true and retry holds the remaining wait.
// Otherwise the attempt is accepted and the cooldown restarts.
func (t *Table) Hit(key string) (retry time.Duration, limited bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if prev, ok := t.last[key]; ok {
		if remaining := t.ttl - now.Sub(prev); remaining > 0 {
			return remaining, true
		}
	}
	t.last[key] = now
	t.prune(now)
	return 0, false
}

// prune drops expired entries so the table does not grow unbounded.
// Called with the lock held.
func (t *Table) prune(now time.Time) {
	for k, prev := range t.last {
		if now.Sub(prev) >= t.ttl {
			delete(t.last, k)
		}
	}
}
