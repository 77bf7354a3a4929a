package system

import (
	"math"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
)

// DefaultArenaRadius bounds the fighting circle in metres.
const DefaultArenaRadius = 20.0

// epsilonNudge is the deterministic tiny push applied to coincident
// centres so the pair separates the same way every run.
const epsilonNudge = 1e-6

type cellKey struct {
	x, y int
}

// spatialHash is a uniform-grid broad phase. Cells remember insertion
// order so bucket iteration stays deterministic.
type spatialHash struct {
	cell  float64
	grid  map[cellKey][]ecs.EntityID
	order []cellKey
}

func newSpatialHash(cellSize float64) *spatialHash {
	return &spatialHash{
		cell: cellSize,
		grid: make(map[cellKey][]ecs.EntityID),
	}
}

func (h *spatialHash) key(x, y float64) cellKey {
	return cellKey{int(math.Floor(x / h.cell)), int(math.Floor(y / h.cell))}
}

func (h *spatialHash) clear() {
	for _, k := range h.order {
		h.grid[k] = h.grid[k][:0]
	}
	h.order = h.order[:0]
}

func (h *spatialHash) insert(e ecs.EntityID, x, y float64) {
	k := h.key(x, y)
	bucket := h.grid[k]
	if len(bucket) == 0 {
		h.order = append(h.order, k)
	}
	h.grid[k] = append(bucket, e)
}

// Collision runs a spatial-hash broad phase, a circle-circle push-apart
// narrow phase, then clamps everyone inside the arena rim.
type Collision struct {
	ArenaRadius float64
	grid        *spatialHash
}

// NewCollision builds the collision system for an arena of the given
// radius. Pass DefaultArenaRadius for the standard circle.
func NewCollision(arenaRadius float64) *Collision {
	return &Collision{
		ArenaRadius: arenaRadius,
		grid:        newSpatialHash(1.0),
	}
}

func (*Collision) Priority() int { return PriorityCollision }

func (c *Collision) Update(w *ecs.World, dtNS int64) error {
	pos := ecs.StoreFor[component.Position](w)
	rad := ecs.StoreFor[component.Radius](w)

	// Cell size tracks the largest radius so a circle never spans more
	// than its own and adjacent cells.
	var maxR float64
	for _, r := range rad.All() {
		if r.R > maxR {
			maxR = r.R
		}
	}
	cell := math.Max(0.01, 2*maxR)
	if math.Abs(cell-c.grid.cell) > 1e-6 {
		c.grid = newSpatialHash(cell)
	}

	c.grid.clear()
	ids := sortedIDs(pos)
	for _, e := range ids {
		p, _ := pos.Get(e)
		c.grid.insert(e, p.X, p.Y)
	}

	// Visit each populated cell once, resolving within the cell and
	// against the half-neighbourhood so no pair is checked twice.
	for _, k := range c.grid.order {
		bucket := c.grid.grid[k]
		resolvePairs(bucket, bucket, true, pos, rad)
		if nb := c.grid.grid[cellKey{k.x + 1, k.y}]; len(nb) > 0 {
			resolvePairs(bucket, nb, false, pos, rad)
		}
		for _, jy := range [2]int{k.y + 1, k.y - 1} {
			if nb := c.grid.grid[cellKey{k.x, jy}]; len(nb) > 0 {
				resolvePairs(bucket, nb, false, pos, rad)
			}
			if nb := c.grid.grid[cellKey{k.x + 1, jy}]; len(nb) > 0 {
				resolvePairs(bucket, nb, false, pos, rad)
			}
		}
	}

	// Rim clamp.
	for _, e := range ids {
		rc, ok := rad.Get(e)
		if !ok {
			continue
		}
		p, _ := pos.Get(e)
		rEff := c.ArenaRadius - rc.R
		d2 := p.X*p.X + p.Y*p.Y
		if d2 <= rEff*rEff {
			continue
		}
		dist := math.Sqrt(d2)
		if dist == 0 {
			p.X, p.Y = rEff, 0
		} else {
			scale := rEff / dist
			p.X *= scale
			p.Y *= scale
		}
		pos.Add(e, p)
	}
	return nil
}

// resolvePairs pushes overlapping circle pairs apart symmetrically.
// When both buckets are the same slice (same=true), only the upper
// triangle is visited so no pair resolves twice.
func resolvePairs(bucketA, bucketB []ecs.EntityID, same bool, pos *ecs.Store[component.Position], rad *ecs.Store[component.Radius]) {
	for i, ea := range bucketA {
		pa, okP := pos.Get(ea)
		ra, okR := rad.Get(ea)
		if !okP || !okR {
			continue
		}
		others := bucketB
		if same {
			others = bucketB[i+1:]
		}
		for _, eb := range others {
			pb, okP := pos.Get(eb)
			rb, okR := rad.Get(eb)
			if !okP || !okR {
				continue
			}
			dx := pa.X - pb.X
			dy := pa.Y - pb.Y
			dist2 := dx*dx + dy*dy
			sumR := ra.R + rb.R
			if dist2 >= sumR*sumR {
				continue
			}
			if dist2 == 0 {
				pa.X += epsilonNudge
				pb.X -= epsilonNudge
				pos.Add(ea, pa)
				pos.Add(eb, pb)
				continue
			}
			dist := math.Sqrt(dist2)
			push := 0.5 * (sumR - dist) / dist
			nx := dx * push
			ny := dy * push
			pa.X += nx
			pa.Y += ny
			pb.X -= nx
			pb.Y -= ny
			pos.Add(ea, pa)
			pos.Add(eb, pb)
		}
	}
}
