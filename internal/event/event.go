// Package event enumerates every transient payload kind carried by the
// world's per-tick queues. The set is closed: a consumer switching on
// the kind constants below handles every case the simulation can emit.
package event

import "github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"

// Event kinds. Keep the switch in any exhaustive consumer in sync when
// adding a kind.
const (
	KindActivitySample ecs.EventKind = iota
	KindImpact
	KindExhaustion
	KindSurrender
	KindDeath
)

// Deferred-action kinds.
const (
	KindDespawn ecs.DeferredKind = iota
)

// ActivitySample is posted once per tick for any locomotion, attack or
// defence effort an entity makes. The fatigue system converts samples
// into stamina drain.
type ActivitySample struct {
	Tick     uint64
	Entity   ecs.EntityID
	ActionID string
	// MetresMoved is zero for stationary efforts such as swings.
	MetresMoved float64
}

func (ActivitySample) Kind() ecs.EventKind { return KindActivitySample }

// Impact records one weapon contact between two fighters.
type Impact struct {
	Tick      uint64
	Attacker  ecs.EntityID
	Defender  ecs.EntityID
	ContactX  float64
	ContactY  float64
	RelSpeed  float64 // linear speed of the contact segment, m/s
	Mass      float64 // weapon mass, kg
	EdgeType  string  // "blunt", "slash" or "pierce"
	Part      string  // hit-segment tag, e.g. "strong_edge"
	RegionIdx int     // anatomy region struck
}

func (Impact) Kind() ecs.EventKind { return KindImpact }

// Exhaustion is posted the tick an entity's stamina first reaches zero.
type Exhaustion struct {
	Tick   uint64
	Entity ecs.EntityID
}

func (Exhaustion) Kind() ecs.EventKind { return KindExhaustion }

// Surrender is posted when a desperate fighter gives up.
type Surrender struct {
	Tick   uint64
	Entity ecs.EntityID
	Cause  string // "low_morale" or "exhaustion"
}

func (Surrender) Kind() ecs.EventKind { return KindSurrender }

// Death is broadcast when an entity dies.
type Death struct {
	Tick   uint64
	Entity ecs.EntityID
	Cause  string // "organ_failure" or "exsanguination"
}

func (Death) Kind() ecs.EventKind { return KindDeath }

// Despawn asks the run loop to remove an entity's components before the
// end-of-tick flush.
type Despawn struct {
	Entity ecs.EntityID
}

func (Despawn) DeferredKind() ecs.DeferredKind { return KindDespawn }
