package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/actiontable"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/arena"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

func testMaul(t *testing.T) component.Weapon {
	t.Helper()
	table, err := actiontable.Default()
	require.NoError(t, err)
	maul, err := arena.BuildMaul(table)
	require.NoError(t, err)
	return maul
}

// spawnDuel places an armed attacker and an unarmed target dx metres
// away on the X axis.
func spawnDuel(t *testing.T, w *ecs.World, dx float64) (attacker, target ecs.EntityID) {
	t.Helper()
	attacker = w.Entities.NextID()
	target = w.Entities.NextID()
	pos := ecs.StoreFor[component.Position](w)
	rad := ecs.StoreFor[component.Radius](w)
	pos.Add(attacker, component.Position{})
	rad.Add(attacker, component.Radius{R: 0.3})
	pos.Add(target, component.Position{X: dx})
	rad.Add(target, component.Radius{R: 0.3})
	ecs.StoreFor[component.Weapon](w).Add(attacker, testMaul(t))
	ecs.StoreFor[component.Opponent](w).Add(attacker, component.Opponent{Target: target})
	return attacker, target
}

// stepAttack advances the attack system one manual tick and returns the
// tick's impacts.
func stepAttack(t *testing.T, w *ecs.World) []event.Impact {
	t.Helper()
	w.Tick++
	require.NoError(t, Attack{}.Update(w, ecs.DefaultDeltaNS))
	hits := ecs.ConsumeEvents[event.Impact](w)
	w.Flush()
	return hits
}

func TestAttackAutoSwingLandsOneImpact(t *testing.T) {
	w := ecs.NewWorld(1)
	attacker, target := spawnDuel(t, w, 0.6)

	var hits []event.Impact
	// Two swing windows plus the second swing's windup and active phases.
	for range 2*AutoSwingTicks + 10 {
		w.Tick++
		require.NoError(t, Attack{}.Update(w, ecs.DefaultDeltaNS))
		tickHits := ecs.ConsumeEvents[event.Impact](w)
		// Every impact is paired with an effort sample for fatigue.
		samples := ecs.ConsumeEvents[event.ActivitySample](w)
		require.Len(t, samples, len(tickHits))
		for _, s := range samples {
			assert.Equal(t, "light_slash", s.ActionID)
		}
		hits = append(hits, tickHits...)
		w.Flush()
	}

	// One swing per AutoSwingTicks window, one contact per swing.
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Equal(t, attacker, h.Attacker)
		assert.Equal(t, target, h.Defender)
		assert.Equal(t, "blunt", h.EdgeType)
		assert.Equal(t, 5.0, h.Mass)
		assert.Greater(t, h.RelSpeed, 0.0)
		assert.GreaterOrEqual(t, h.RegionIdx, 0)
		assert.Less(t, h.RegionIdx, len(component.Regions))
	}
	// The contact lands after the windup, during the active phase.
	assert.Greater(t, hits[0].Tick, uint64(AutoSwingTicks))
	assert.Greater(t, hits[1].Tick, uint64(2*AutoSwingTicks))
}

func TestAttackOutOfReachNeverConnects(t *testing.T) {
	w := ecs.NewWorld(1)
	spawnDuel(t, w, 5.0) // beyond the maul's 1.2 m reach

	for range 3 * AutoSwingTicks {
		require.Empty(t, stepAttack(t, w))
	}
}

func TestAttackPhaseMachineCycles(t *testing.T) {
	w := ecs.NewWorld(1)
	attacker, _ := spawnDuel(t, w, 5.0)
	st := ecs.StoreFor[component.AttackState](w)

	phaseAt := make(map[uint64]component.AttackPhase)
	for range AutoSwingTicks + 20 {
		stepAttack(t, w)
		s, ok := st.Get(attacker)
		require.True(t, ok)
		phaseAt[w.Tick] = s.Phase
	}

	// light_slash: windup 5, active 3, recovery 5.
	assert.Equal(t, component.PhaseIdle, phaseAt[59])
	assert.Equal(t, component.PhaseWindup, phaseAt[60])
	assert.Equal(t, component.PhaseActive, phaseAt[64])
	assert.Equal(t, component.PhaseRecovery, phaseAt[67])
	assert.Equal(t, component.PhaseIdle, phaseAt[72])

	s, _ := st.Get(attacker)
	assert.Equal(t, 1, s.SwingID)
}

func TestAttackThrustExtendsAlongHeading(t *testing.T) {
	w := ecs.NewWorld(1)
	attacker := w.Entities.NextID()
	target := w.Entities.NextID()
	pos := ecs.StoreFor[component.Position](w)
	rad := ecs.StoreFor[component.Radius](w)
	pos.Add(attacker, component.Position{})
	rad.Add(attacker, component.Radius{R: 0.3})
	pos.Add(target, component.Position{X: 0.9})
	rad.Add(target, component.Radius{R: 0.3})
	spear := component.Weapon{
		Profiles: []component.AttackProfile{{
			ActionID:      "straight_thrust",
			Kind:          component.KindThrust,
			WindupTicks:   6,
			ActiveTicks:   4,
			RecoveryTicks: 6,
		}},
		Segments: []component.HitSegment{{OffsetM: 1.2, RadiusM: 0.05, Tag: "point"}},
		MassKG:   1.5,
		EdgeType: "pierce",
	}
	ecs.StoreFor[component.Weapon](w).Add(attacker, spear)
	ecs.StoreFor[component.Opponent](w).Add(attacker, component.Opponent{Target: target})

	var hits []event.Impact
	for range AutoSwingTicks + 20 {
		hits = append(hits, stepAttack(t, w)...)
	}

	// The point starts at the attacker and extends toward the target:
	// intent at tick 60, active from tick 65, tip at 1.2 * t metres. It
	// first reaches the target's circle at t = 0.5 (tick 67), 0.6 m out.
	require.Len(t, hits, 1)
	h := hits[0]
	assert.Equal(t, uint64(67), h.Tick)
	assert.Equal(t, "pierce", h.EdgeType)
	assert.Equal(t, "point", h.Part)
	assert.InDelta(t, 0.6, h.ContactX, 1e-9)
	assert.InDelta(t, 0.0, h.ContactY, 1e-12)
	// Thrust speed is reach over the active window: 1.2 m / 80 ms.
	assert.InDelta(t, 15.0, h.RelSpeed, 1e-9)
}

func TestAttackImpactLatchStopsRepeatHits(t *testing.T) {
	w := ecs.NewWorld(1)
	spawnDuel(t, w, 0.4) // point blank: every active tick would contact

	total := 0
	for range AutoSwingTicks + 20 {
		total += len(stepAttack(t, w))
	}
	assert.Equal(t, 1, total)
}
