package ecs

// EventKind tags the payload carried by an Event. The closed set of
// kinds lives in the event package; consumers switch on the kind (or on
// the concrete type via ConsumeEvents) and can handle every case
// exhaustively.
type EventKind uint8

// Event is a transient per-tick payload carried by the World's event
// queue. Implementations are plain data; they must never be read across
// a tick boundary.
type Event interface {
	Kind() EventKind
}

// DeferredKind tags a deferred action.
type DeferredKind uint8

// Deferred is an action queued during a tick for processing before the
// end-of-tick flush, typically structural changes that would invalidate
// iteration if applied immediately.
type Deferred interface {
	DeferredKind() DeferredKind
}
