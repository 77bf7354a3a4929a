package system

import (
	"math"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

// Movement Euler-integrates Velocity into Position every fixed step and
// posts one activity sample per moved entity so the fatigue system can
// charge stamina for the stride.
type Movement struct{}

func (Movement) Priority() int { return PriorityMovement }

func (Movement) Update(w *ecs.World, dtNS int64) error {
	dt := float64(dtNS) * 1e-9
	pos := ecs.StoreFor[component.Position](w)
	vel := ecs.StoreFor[component.Velocity](w)

	for _, e := range sortedIDs(pos) {
		v, ok := vel.Get(e)
		if !ok {
			continue
		}
		p, _ := pos.Get(e)
		p.X += v.VX * dt
		p.Y += v.VY * dt
		pos.Add(e, p)

		moved := math.Hypot(v.VX*dt, v.VY*dt)
		w.PostEvent(event.ActivitySample{
			Tick:        w.Tick,
			Entity:      e,
			ActionID:    "walk_step",
			MetresMoved: moved,
		})
	}
	return nil
}
