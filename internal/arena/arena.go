// Package arena assembles ready-to-fight worlds: weapon blueprints
// built from the action catalogue and fighter spawners that attach the
// full component set in one call.
package arena

import (
	"github.com/rotisserie/eris"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/actiontable"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
)

// Fighter spawn geometry.
const (
	DefaultSeparationM = 0.30
	DefaultFighterR    = 0.30
)

// maulActions are the catalogue rows a maul wielder can perform, in
// profile-index order.
var maulActions = []string{
	"light_slash",
	"heavy_overhead",
	"arcing_sweep",
	"wild_twohand",
	"straight_thrust",
}

// BuildMaul assembles the reference two-handed maul from the action
// catalogue: heavy striking head at full reach, a stiff haft, and a
// short point for close work.
func BuildMaul(t *actiontable.Table) (component.Weapon, error) {
	w := component.Weapon{
		Segments: []component.HitSegment{
			{OffsetM: 0.20, RadiusM: 0.25, Tag: "strong_edge"},
			{OffsetM: 0.95, RadiusM: 0.20, Tag: "weak_edge"},
			{OffsetM: 1.20, RadiusM: 0.05, Tag: "point"},
		},
		MassKG:   5.0,
		EdgeType: "blunt",
	}
	for _, id := range maulActions {
		spec, ok := t.Get(id)
		if !ok {
			return component.Weapon{}, eris.Errorf("arena: action %q missing from catalogue", id)
		}
		kind := component.KindSwing
		if spec.Kind == "thrust" {
			kind = component.KindThrust
		}
		w.Profiles = append(w.Profiles, component.AttackProfile{
			ActionID:      spec.ID,
			Kind:          kind,
			WindupTicks:   spec.Wind,
			ActiveTicks:   spec.Hit,
			RecoveryTicks: spec.Reco,
		})
	}
	return w, nil
}

// SpawnFighter creates one fully equipped fighter at the given position.
func SpawnFighter(w *ecs.World, x, y float64, weapon component.Weapon) ecs.EntityID {
	e := w.Entities.NextID()
	ecs.StoreFor[component.Position](w).Add(e, component.Position{X: x, Y: y})
	ecs.StoreFor[component.Velocity](w).Add(e, component.Velocity{})
	ecs.StoreFor[component.Radius](w).Add(e, component.Radius{R: DefaultFighterR})
	ecs.StoreFor[component.Weapon](w).Add(e, weapon)
	ecs.StoreFor[component.Stamina](w).Add(e, component.DefaultStamina())
	ecs.StoreFor[component.Morale](w).Add(e, component.DefaultMorale())
	ecs.StoreFor[component.Vitals](w).Add(e, component.DefaultVitals())
	ecs.StoreFor[component.Anatomy](w).Add(e, component.DefaultAnatomy())
	ecs.StoreFor[component.Bleeding](w).Add(e, component.Bleeding{})
	return e
}

// SpawnFighterPair places two maul-armed fighters nose to nose on the X
// axis, separated by DefaultSeparationM, and links them as opponents.
func SpawnFighterPair(w *ecs.World, t *actiontable.Table) ([2]ecs.EntityID, error) {
	maul, err := BuildMaul(t)
	if err != nil {
		return [2]ecs.EntityID{}, err
	}
	half := DefaultSeparationM / 2
	a := SpawnFighter(w, -half, 0, maul)
	b := SpawnFighter(w, half, 0, maul)

	opp := ecs.StoreFor[component.Opponent](w)
	opp.Add(a, component.Opponent{Target: b})
	opp.Add(b, component.Opponent{Target: a})
	return [2]ecs.EntityID{a, b}, nil
}
