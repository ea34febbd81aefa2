package cache

// Null is a no-op store that never retains anything.
// Used when caching is disabled.
type Null[K comparable, V any] struct{}

// NewNull creates a null store.
func NewNull[K comparable, V any]() Store[K, V] {
	return Null[K, V]{}
}

// Get always returns a miss.
func (Null[K, V]) Get(K, uint64) (V, bool) {
	var zero V
	return zero, false
}

// Set does nothing.
func (Null[K, V]) Set(K, uint64, V) {}

// Clear does nothing.
func (Null[K, V]) Clear() {}

// Len is always zero.
func (Null[K, V]) Len() int { return 0 }

// Ensure Null implements Store.
var _ Store[string, int] = Null[string, int]{}
