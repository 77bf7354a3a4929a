package system

import (
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

// Reaper applies the tick's deferred actions. It runs last so earlier
// systems never see entities vanish mid-iteration; the scheduler's
// flush then clears the drained list.
type Reaper struct{}

func (Reaper) Priority() int { return PriorityReaper }

func (Reaper) Update(w *ecs.World, dtNS int64) error {
	for _, d := range w.DeferredActions() {
		switch d := d.(type) {
		case event.Despawn:
			w.Despawn(d.Entity)
		}
	}
	return nil
}
