// Package system implements the arena's per-tick simulation systems.
// Priorities are spaced so each tick runs movement, collision, attack,
// condition (recovery/fatigue/morale), damage, bleed, then the reaper.
package system

import (
	"slices"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
)

// Execution priorities. Lower runs earlier within a tick.
const (
	PriorityMovement  = 10
	PriorityCollision = 20
	PriorityAttack    = 30
	PriorityRecovery  = 40
	PriorityFatigue   = 41
	PriorityMorale    = 42
	PriorityDamage    = 50
	PriorityBleed     = 51
	PriorityReaper    = 90
)

// sortedIDs returns a store's entity IDs in ascending order. Map
// iteration order is not deterministic, so every system whose outcome
// depends on visit order iterates a sorted copy instead.
func sortedIDs[T any](s *ecs.Store[T]) []ecs.EntityID {
	ids := s.IDs()
	slices.Sort(ids)
	return ids
}
