// Package component defines the plain data attached to arena entities.
// Components carry no behavior; the systems in internal/system do all
// mutation.
package component

import "github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"

// Position is a 2D location in arena space, metres. The arena origin is
// its centre.
type Position struct {
	X, Y float64
}

// Velocity in metres per second.
type Velocity struct {
	VX, VY float64
}

// Radius is a circle collision radius in metres.
type Radius struct {
	R float64
}

// Opponent links a fighter to its current target.
type Opponent struct {
	Target ecs.EntityID
}
