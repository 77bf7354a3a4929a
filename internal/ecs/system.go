package ecs

import (
	"reflect"
	"sort"
)

// System is a prioritized unit of per-tick simulation logic. Lower
// priorities execute earlier within a tick. Update mutates the world in
// place; a non-nil error aborts the current run immediately.
type System interface {
	Priority() int
	Update(w *World, dtNS int64) error
}

// Named lets a system override the display name used in profiling
// output. Systems without it are named after their Go type.
type Named interface {
	SystemName() string
}

// Func adapts a plain function into a System with a fixed priority.
type Func struct {
	Name string
	Pri  int
	Fn   func(w *World, dtNS int64) error
}

func (f Func) Priority() int { return f.Pri }

func (f Func) Update(w *World, dtNS int64) error { return f.Fn(w, dtNS) }

func (f Func) SystemName() string {
	if f.Name != "" {
		return f.Name
	}
	return "func"
}

// SystemName returns the display name for a system: the Named override
// when present, otherwise the system's Go type name.
func SystemName(s System) string {
	if n, ok := s.(Named); ok {
		return n.SystemName()
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Registry keeps systems sorted by priority for deterministic
// iteration. Registries are plain values owned by the caller; there is
// no package-level default, so independent runs (and parallel tests)
// cannot contaminate each other.
//
// Registering the same system twice yields two entries and it will run
// twice per tick; the registry does not deduplicate.
type Registry struct {
	systems []System
}

// Register inserts the system at the position given by its priority.
// Equal priorities keep registration order: later registrations sort
// after earlier ones.
func (r *Registry) Register(s System) {
	idx := sort.Search(len(r.systems), func(i int) bool {
		return r.systems[i].Priority() > s.Priority()
	})
	r.systems = append(r.systems, nil)
	copy(r.systems[idx+1:], r.systems[idx:])
	r.systems[idx] = s
}

// Systems returns a snapshot copy of the ordered collection, so
// iteration during a tick cannot be corrupted by later registrations.
func (r *Registry) Systems() []System {
	out := make([]System, len(r.systems))
	copy(out, r.systems)
	return out
}

// Len returns the number of registered entries, counting duplicates.
func (r *Registry) Len() int {
	return len(r.systems)
}
