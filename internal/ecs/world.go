package ecs

import (
	"math/rand"
	"reflect"
)

// World is the sole mutable aggregate handed to every system. It owns a
// seeded deterministic random source, the logical tick counter, the
// entity allocator, one component store per component type, and the
// transient per-tick queues. Worlds are single-threaded by design:
// systems run strictly sequentially, so no locking is needed.
type World struct {
	// RNG is the deterministic random source for this run. Two worlds
	// built with the same seed and advanced identically stay
	// bit-identical.
	RNG *rand.Rand

	// Tick counts completed scheduler steps, starting at zero.
	Tick uint64

	// Entities issues entity identifiers for this world.
	Entities IDAllocator

	stores   map[reflect.Type]any
	events   []Event
	deferred []Deferred
}

// NewWorld creates a World seeded with the given value. Component
// stores are created lazily on first access.
func NewWorld(seed int64) *World {
	return &World{
		RNG:    rand.New(rand.NewSource(seed)),
		stores: make(map[reflect.Type]any),
	}
}

// StoreFor returns the world's component store for type T, creating it
// on first use. The store is shared: every caller asking for the same T
// gets the same instance, so the single type assertion here is the only
// cast in the lookup path.
func StoreFor[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[t] = s
	return s
}

// entityRemover is satisfied by every Store[T].
type entityRemover interface {
	Remove(EntityID)
}

// Despawn removes the entity's components from every store. The
// identifier itself is never reused until the allocator is reset.
func (w *World) Despawn(e EntityID) {
	for _, s := range w.stores {
		s.(entityRemover).Remove(e)
	}
}

// PostEvent appends an event to the transient queue. The queue is
// cleared at the end of the current tick; events never survive a flush.
func (w *World) PostEvent(e Event) {
	w.events = append(w.events, e)
}

// Defer appends a deferred action to be handled before the end of the
// current tick. Like events, deferred actions never survive a flush.
func (w *World) Defer(d Deferred) {
	w.deferred = append(w.deferred, d)
}

// DeferredActions returns the pending deferred actions for this tick.
// The slice is owned by the world; it is invalidated by Flush.
func (w *World) DeferredActions() []Deferred {
	return w.deferred
}

// Flush clears the transient event queue and deferred-action list. The
// scheduler calls this at the end of every tick.
func (w *World) Flush() {
	w.events = w.events[:0]
	w.deferred = w.deferred[:0]
}

// ConsumeEvents removes and returns every queued event of concrete type
// T, preserving relative order. Events of other types stay queued.
func ConsumeEvents[T Event](w *World) []T {
	var matched []T
	rest := w.events[:0]
	for _, e := range w.events {
		if m, ok := e.(T); ok {
			matched = append(matched, m)
		} else {
			rest = append(rest, e)
		}
	}
	w.events = rest
	return matched
}

// PeekEvents returns every queued event of concrete type T without
// removing anything from the queue.
func PeekEvents[T Event](w *World) []T {
	var matched []T
	for _, e := range w.events {
		if m, ok := e.(T); ok {
			matched = append(matched, m)
		}
	}
	return matched
}

// EventCount returns the number of events currently queued, across all
// kinds. Mostly useful in tests asserting flush isolation.
func (w *World) EventCount() int {
	return len(w.events)
}
