package system

import (
	"math"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
)

// OrbitVelocity returns a counter-clockwise tangent velocity that
// maintains a circular orbit of the given radius around a centre point.
// angularSpeed is in rad/s (positive = CCW); gain is the proportional
// term pulling the entity back onto the orbit radius.
func OrbitVelocity(pos component.Position, cx, cy, radius, angularSpeed, gain float64) (vx, vy float64) {
	dx, dy := pos.X-cx, pos.Y-cy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1e-9
	}
	corr := (radius - dist) * gain
	// Unit tangent is (-dy, dx).
	tx, ty := -dy/dist, dx/dist
	vTan := angularSpeed * radius
	vx = tx*vTan + dx/dist*corr
	vy = ty*vTan + dy/dist*corr
	return vx, vy
}
