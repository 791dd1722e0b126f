// Package cache provides a mutex-guarded generic TTL store. The process owns
// two instances by convention: one for instrument metadata (short TTL) and one
// for raw bar series (longer TTL). Expired entries are evicted lazily on read
// and may additionally be swept with PurgeExpired.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// ConsistencyError reports a cache invariant violation: an expired entry
// observed on the serve path. It must never occur under a correct
// implementation; it exists so callers can assert on the failure mode.
type ConsistencyError struct {
	Key any
	Age time.Duration
	TTL time.Duration
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("cache consistency: expired entry served for key %v (age %s, ttl %s)", e.Key, e.Age, e.TTL)
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
	ttl        time.Duration
}

// Store is a TTL-keyed cache. The zero value is not usable; construct with New.
// All methods are safe for concurrent use; no caller observes a
// partially-written entry.
type Store[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	now     func() time.Time

	// OnViolation, if set, receives any ConsistencyError detected on the
	// serve path. Set before first use; not guarded.
	OnViolation func(error)
}

// New creates an empty store using the wall clock.
func New[K comparable, V any]() *Store[K, V] {
	return NewWithClock[K, V](time.Now)
}

// NewWithClock creates an empty store with an injected clock, for tests.
func NewWithClock[K comparable, V any](now func() time.Time) *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
		now:     now,
	}
}

// Get returns the cached value for key, or ok=false on a miss. An entry whose
// age has reached its TTL counts as a miss and is evicted in place; a stale
// value is never returned.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	age := s.now().Sub(e.insertedAt)
	if age >= e.ttl {
		delete(s.entries, key)
		return zero, false
	}
	// Re-check at serve time. Unreachable under the single lock; kept so the
	// invariant has a concrete failure signal.
	if served := s.now().Sub(e.insertedAt); served >= e.ttl {
		if s.OnViolation != nil {
			s.OnViolation(&ConsistencyError{Key: key, Age: served, TTL: e.ttl})
		}
		delete(s.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, replacing any existing entry and resetting its age.
func (s *Store[K, V]) Put(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, insertedAt: s.now(), ttl: ttl}
}

// Invalidate removes the entry for key, if present.
func (s *Store[K, V]) Invalidate(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// PurgeExpired removes every expired entry and reports how many were dropped.
func (s *Store[K, V]) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for k, e := range s.entries {
		if now.Sub(e.insertedAt) >= e.ttl {
			delete(s.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of resident entries, expired or not.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
