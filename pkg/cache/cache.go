// Package cache provides in-process memo stores for derived values.
//
// Stores are keyed by a comparable key and stamped with the generation of
// the data they were derived from. A lookup with a newer generation misses
// and the next write discards every older entry, so mutation of the source
// data invalidates the store without any explicit call.
//
// Hit, miss, set and clear events are reported through
// [observability.Cache].
package cache

import (
	"sync"

	"github.com/matzehuels/ontograph/pkg/observability"
)

// Store memoizes values for one generation of source data.
type Store[K comparable, V any] interface {
	// Get returns the value stored for key at generation.
	Get(key K, generation uint64) (V, bool)
	// Set stores value for key at generation. Writes stamped with an older
	// generation than the store's current one are dropped.
	Set(key K, generation uint64, value V)
	// Clear drops every entry.
	Clear()
	// Len returns the number of live entries.
	Len() int
}

// Memo is a map-backed [Store] safe for concurrent use.
type Memo[K comparable, V any] struct {
	kind string

	mu         sync.RWMutex
	generation uint64
	entries    map[K]V
}

// NewMemo creates an empty memo. kind labels the memo in cache hook events.
func NewMemo[K comparable, V any](kind string) *Memo[K, V] {
	return &Memo[K, V]{kind: kind, entries: make(map[K]V)}
}

// Get implements [Store].
func (m *Memo[K, V]) Get(key K, generation uint64) (V, bool) {
	m.mu.RLock()
	v, ok := m.entries[key]
	if m.generation != generation {
		ok = false
	}
	m.mu.RUnlock()

	if ok {
		observability.Cache().OnCacheHit(m.kind)
	} else {
		observability.Cache().OnCacheMiss(m.kind)
		var zero V
		v = zero
	}
	return v, ok
}

// Set implements [Store].
func (m *Memo[K, V]) Set(key K, generation uint64, value V) {
	m.mu.Lock()
	switch {
	case generation < m.generation:
		m.mu.Unlock()
		return
	case generation > m.generation:
		m.entries = make(map[K]V)
		m.generation = generation
	}
	m.entries[key] = value
	n := len(m.entries)
	m.mu.Unlock()

	observability.Cache().OnCacheSet(m.kind, n)
}

// Clear implements [Store].
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	m.entries = make(map[K]V)
	m.mu.Unlock()

	observability.Cache().OnCacheClear(m.kind)
}

// Len implements [Store].
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Ensure Memo implements Store.
var _ Store[string, int] = (*Memo[string, int])(nil)
