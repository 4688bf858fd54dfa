package model

// MultiMap groups values under a key. Keys keep first-insertion order and
// values keep insertion order within a key.
type MultiMap[K comparable, V any] struct {
	keys   []K
	values map[K][]V
}

// NewMultiMap creates an empty MultiMap.
func NewMultiMap[K comparable, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{values: make(map[K][]V)}
}

// GroupBy builds a MultiMap in one pass over items.
func GroupBy[T any, K comparable](items []T, key func(T) K) *MultiMap[K, T] {
	m := NewMultiMap[K, T]()
	for _, item := range items {
		m.Add(key(item), item)
	}
	return m
}

// Add appends v to the values of k.
func (m *MultiMap[K, V]) Add(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = append(m.values[k], v)
}

// Get returns the values of k, or nil when k has none.
func (m *MultiMap[K, V]) Get(k K) []V {
	return m.values[k]
}

// Keys returns the keys in first-insertion order.
func (m *MultiMap[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}
