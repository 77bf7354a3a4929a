package system

import (
	"math"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

// AutoSwingTicks is the interval between automatic attack intents while
// a fighter is idle.
const AutoSwingTicks = 60

// arcStartDeg/arcEndDeg define the 90 degree swing sweep relative to
// the attacker-to-defender heading: from 30 degrees on the right side
// through to -60 degrees past the left.
const (
	arcStartDeg = 30.0
	arcEndDeg   = -60.0
)

// Attack runs the fixed-step melee state machine: idle fighters start a
// swing every AutoSwingTicks, wind up, then sweep their weapon's hit
// segments across an arc (or along a line for thrusts) during the
// active phase. The first segment contact per swing posts one Impact
// plus an activity sample for the effort.
type Attack struct{}

func (Attack) Priority() int { return PriorityAttack }

func (Attack) Update(w *ecs.World, dtNS int64) error {
	pos := ecs.StoreFor[component.Position](w)
	rad := ecs.StoreFor[component.Radius](w)
	wep := ecs.StoreFor[component.Weapon](w)
	st := ecs.StoreFor[component.AttackState](w)
	opp := ecs.StoreFor[component.Opponent](w)

	dtS := float64(dtNS) * 1e-9
	tick := w.Tick

	// Bootstrap: every armed fighter gets an attack state.
	for _, e := range sortedIDs(wep) {
		if _, ok := st.Get(e); !ok {
			st.Add(e, component.AttackState{})
		}
	}

	for _, e := range sortedIDs(st) {
		state, _ := st.Get(e)
		weapon, ok := wep.Get(e)
		if !ok {
			continue
		}
		target, ok := opp.Get(e)
		if !ok {
			continue
		}

		// Auto intent.
		if state.Phase == component.PhaseIdle && tick%AutoSwingTicks == 0 {
			state.ProfileIdx = 0
			state.Phase = component.PhaseWindup
			state.TicksLeft = weapon.Profiles[0].WindupTicks
			state.HasHit = false
		}

		// Countdown and phase transitions.
		if state.Phase != component.PhaseIdle {
			state.TicksLeft--
			if state.TicksLeft <= 0 {
				prof := weapon.Profiles[state.ProfileIdx]
				switch state.Phase {
				case component.PhaseWindup:
					state.Phase = component.PhaseActive
					state.TicksLeft = prof.ActiveTicks
				case component.PhaseActive:
					state.Phase = component.PhaseRecovery
					state.TicksLeft = prof.RecoveryTicks
				default: // recovery
					state.Phase = component.PhaseIdle
					state.SwingID++
				}
			}
		}

		if state.Phase != component.PhaseActive || state.HasHit {
			st.Add(e, state)
			continue
		}

		prof := weapon.Profiles[state.ProfileIdx]
		ap, okA := pos.Get(e)
		dp, okD := pos.Get(target.Target)
		dc, okC := rad.Get(target.Target)
		if !okA || !okD || !okC {
			st.Add(e, state)
			continue
		}

		// Heading from attacker to defender.
		dx, dy := dp.X-ap.X, dp.Y-ap.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-9
		}
		hx, hy := dx/dist, dy/dist

		// Swing progress: 0 at the start of the active phase, 1 at the end.
		t := 1.0 - float64(state.TicksLeft)/float64(prof.ActiveTicks)

		var ux, uy float64
		if prof.Kind == component.KindSwing {
			thetaDeg := arcStartDeg + t*(arcEndDeg-arcStartDeg)
			theta := thetaDeg * math.Pi / 180
			// Rotate the heading by theta; (rx, ry) is the rightward
			// perpendicular.
			rx, ry := -hy, hx
			ux = math.Cos(theta)*hx + math.Sin(theta)*rx
			uy = math.Cos(theta)*hy + math.Sin(theta)*ry
		} else {
			ux, uy = hx, hy
		}

		// Linear segment speed in m/s over the active window.
		reach := weapon.MaxOffset()
		activeS := float64(prof.ActiveTicks) * dtS
		var vLin float64
		if prof.Kind == component.KindSwing {
			vLin = reach * (math.Pi / 2) / activeS
		} else {
			vLin = reach / activeS
		}

		factor := 1.0
		if prof.Kind == component.KindThrust {
			factor = t
		}
		for _, seg := range weapon.Segments {
			cx := ap.X + ux*seg.OffsetM*factor
			cy := ap.Y + uy*seg.OffsetM*factor
			ddx, ddy := dp.X-cx, dp.Y-cy
			if math.Hypot(ddx, ddy) > seg.RadiusM+dc.R {
				continue
			}
			w.PostEvent(event.Impact{
				Tick:      tick,
				Attacker:  e,
				Defender:  target.Target,
				ContactX:  cx,
				ContactY:  cy,
				RelSpeed:  vLin,
				Mass:      weapon.MassKG,
				EdgeType:  weapon.EdgeType,
				Part:      seg.Tag,
				RegionIdx: w.RNG.Intn(len(component.Regions)),
			})
			// Effort sample: one tick, zero travel.
			w.PostEvent(event.ActivitySample{
				Tick:     tick,
				Entity:   e,
				ActionID: prof.ActionID,
			})
			state.HasHit = true
			break
		}
		st.Add(e, state)
	}
	return nil
}
