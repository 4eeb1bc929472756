package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName indicates an insert of a key that is already mapped.
	ErrDuplicateName = errors.New("registry: duplicate name")
	// ErrDuplicateID indicates an insert of a value that is already mapped.
	ErrDuplicateID = errors.New("registry: duplicate id")
)

// BiMap is a one-to-one mapping between keys and values. Both directions are
// updated by the same Insert, so the mapping stays a bijection.
type BiMap[K comparable, V comparable] struct {
	forward map[K]V
	reverse map[V]K
}

// IdentifierMap maps canonical `source:name` keys to numeric ids.
type IdentifierMap = BiMap[string, uint16]

// NewBiMap returns an empty bijection.
func NewBiMap[K comparable, V comparable]() *BiMap[K, V] {
	return &BiMap[K, V]{
		forward: make(map[K]V),
		reverse: make(map[V]K),
	}
}

// Insert maps k to v. It fails without modifying the map when either side is
// already present.
func (m *BiMap[K, V]) Insert(k K, v V) error {
	if _, exists := m.forward[k]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateName, k)
	}
	if _, exists := m.reverse[v]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateID, v)
	}
	m.forward[k] = v
	m.reverse[v] = k
	return nil
}

// Value returns the value mapped to k.
func (m *BiMap[K, V]) Value(k K) (V, bool) {
	v, ok := m.forward[k]
	return v, ok
}

// Key returns the key mapped to v.
func (m *BiMap[K, V]) Key(v V) (K, bool) {
	k, ok := m.reverse[v]
	return k, ok
}

// Len returns the number of pairs.
func (m *BiMap[K, V]) Len() int { return len(m.forward) }

// Range calls fn for every pair until fn returns false. Order is unspecified.
func (m *BiMap[K, V]) Range(fn func(k K, v V) bool) {
	for k, v := range m.forward {
		if !fn(k, v) {
			return
		}
	}
}
