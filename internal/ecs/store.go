package ecs

import "iter"

// Store is a sparse mapping from entity identifiers to component values
// of a single type T. One store instance exists per component type,
// owned by a World. The zero value is not usable; use NewStore or
// StoreFor.
type Store[T any] struct {
	data map[EntityID]T
}

// NewStore creates an empty component store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]T)}
}

// Add inserts or overwrites the component for the entity. Last write
// wins; overwriting is not an error.
func (s *Store[T]) Add(e EntityID, v T) {
	s.data[e] = v
}

// Get returns the stored component and true, or the zero value and
// false when the entity has no component in this store.
func (s *Store[T]) Get(e EntityID) (T, bool) {
	v, ok := s.data[e]
	return v, ok
}

// Remove deletes the entry if present; no-op when absent.
func (s *Store[T]) Remove(e EntityID) {
	delete(s.data, e)
}

// Len returns the number of entities with a component in this store.
func (s *Store[T]) Len() int {
	return len(s.data)
}

// All returns a restartable sequence of (entity, component) pairs in
// map iteration order. Callers that need a deterministic order must
// sort the identifiers themselves (see IDs).
func (s *Store[T]) All() iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		for e, v := range s.data {
			if !yield(e, v) {
				return
			}
		}
	}
}

// IDs returns the stored entity identifiers in map iteration order.
func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for e := range s.data {
		ids = append(ids, e)
	}
	return ids
}
