package system

import (
	"slices"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/actiontable"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

// maxNegShock is the largest single-event morale hit, used both for the
// exhaustion shock and the surrender look-ahead.
const maxNegShock = 15

// Recovery regenerates stamina for entities that posted no activity
// sample this tick. It runs before Fatigue so it can observe the
// samples Fatigue will consume. Desperate fighters recover at a quarter
// rate; exhaustion clears once the reserve climbs back above 25%.
type Recovery struct{}

func (Recovery) Priority() int { return PriorityRecovery }

func (Recovery) Update(w *ecs.World, dtNS int64) error {
	active := make(map[ecs.EntityID]bool)
	for _, ev := range ecs.PeekEvents[event.ActivitySample](w) {
		active[ev.Entity] = true
	}

	stam := ecs.StoreFor[component.Stamina](w)
	mor := ecs.StoreFor[component.Morale](w)
	for _, e := range sortedIDs(stam) {
		if active[e] {
			continue
		}
		s, _ := stam.Get(e)
		regen := s.RegenPerTick
		if m, ok := mor.Get(e); ok && m.State == component.Desperate {
			regen *= 0.25
		}
		s.CurrPts = min(s.MaxPts, s.CurrPts+regen)
		if s.Exhausted && s.CurrPts >= 0.25*s.MaxPts {
			s.Exhausted = false
		}
		stam.Add(e, s)
	}
	return nil
}

// Fatigue consumes activity samples and drains stamina. The drain per
// tick is the action's stamina cost spread evenly over its duration.
// The tick an entity first hits zero it becomes exhausted and an
// Exhaustion event is posted.
type Fatigue struct {
	Actions *actiontable.Table
}

func (Fatigue) Priority() int { return PriorityFatigue }

func (f Fatigue) Update(w *ecs.World, dtNS int64) error {
	stam := ecs.StoreFor[component.Stamina](w)
	for _, ev := range ecs.ConsumeEvents[event.ActivitySample](w) {
		s, ok := stam.Get(ev.Entity)
		if !ok {
			continue
		}
		spec, ok := f.Actions.Get(ev.ActionID)
		if !ok {
			continue
		}
		drain := float64(spec.Stamina) / float64(spec.Ticks)
		s.CurrPts = max(0, s.CurrPts-drain)
		if !s.Exhausted && s.CurrPts <= 0 {
			s.Exhausted = true
			w.PostEvent(event.Exhaustion{Tick: w.Tick, Entity: ev.Entity})
		}
		stam.Add(ev.Entity, s)
	}
	return nil
}

// Morale aggregates shocks from combat, blood loss and exhaustion, and
// posts Surrender for desperate fighters that cannot take another hit.
type Morale struct{}

func (Morale) Priority() int { return PriorityMorale }

func (Morale) Update(w *ecs.World, dtNS int64) error {
	delta := make(map[ecs.EntityID]float64)

	// Landing a hit steadies the attacker; taking one shakes the defender.
	for _, ev := range ecs.PeekEvents[event.Impact](w) {
		delta[ev.Attacker] += 5
		delta[ev.Defender] -= 10
	}
	for _, ev := range ecs.PeekEvents[event.Death](w) {
		delta[ev.Entity] -= 100
	}
	for _, ev := range ecs.ConsumeEvents[event.Exhaustion](w) {
		delta[ev.Entity] -= maxNegShock
	}

	// Steady erosion proportional to blood lost.
	vit := ecs.StoreFor[component.Vitals](w)
	for _, e := range sortedIDs(vit) {
		v, _ := vit.Get(e)
		pctLost := 100 * (1 - v.BloodML/v.MaxBloodML)
		delta[e] += -0.0025 * pctLost
	}

	mor := ecs.StoreFor[component.Morale](w)
	stam := ecs.StoreFor[component.Stamina](w)

	ids := make([]ecs.EntityID, 0, len(delta))
	for e := range delta {
		ids = append(ids, e)
	}
	slices.Sort(ids)

	for _, e := range ids {
		m, ok := mor.Get(e)
		if !ok {
			continue
		}
		m.Value += delta[e]
		if m.Value < 0 {
			m.Value = 0
		} else if m.Value > 100 {
			m.Value = 100
		}
		m.State = component.MoraleStateFor(m.Value)
		mor.Add(e, m)

		if m.State != component.Desperate {
			continue
		}
		s, _ := stam.Get(e)
		if projected := m.Value - maxNegShock; projected < 10 || s.Exhausted {
			cause := "low_morale"
			if s.Exhausted {
				cause = "exhaustion"
			}
			w.PostEvent(event.Surrender{Tick: w.Tick, Entity: e, Cause: cause})
		}
	}
	return nil
}
