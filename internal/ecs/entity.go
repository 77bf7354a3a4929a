// Package ecs provides the deterministic simulation core: a sparse
// entity-component store, a priority-ordered system registry, and a
// fixed-step scheduler that advances a World independent of wall-clock
// frame rate.
package ecs

// EntityID uniquely identifies an entity for the lifetime of a World.
// No entity object exists beyond this integer; all state is attached
// externally via component stores.
type EntityID uint64

// IDAllocator issues strictly increasing entity identifiers starting at
// zero. Identifiers are unique between resets; callers must not mix
// identifiers issued across a Reset.
type IDAllocator struct {
	next EntityID
}

// NextID returns the current counter value and increments it.
func (a *IDAllocator) NextID() EntityID {
	id := a.next
	a.next++
	return id
}

// Reset restarts the sequence at zero. Only valid when no stale
// identifiers remain in any store.
func (a *IDAllocator) Reset() {
	a.next = 0
}
