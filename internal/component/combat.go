package component

// AttackPhase is the melee state machine phase.
type AttackPhase uint8

const (
	PhaseIdle AttackPhase = iota
	PhaseWindup
	PhaseActive
	PhaseRecovery
)

func (p AttackPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWindup:
		return "windup"
	case PhaseActive:
		return "active"
	case PhaseRecovery:
		return "recovery"
	}
	return "unknown"
}

// SwingKind distinguishes arc swings from straight thrusts.
type SwingKind string

const (
	KindSwing  SwingKind = "swing"
	KindThrust SwingKind = "thrust"
)

// AttackProfile is the timing envelope of one attack action.
type AttackProfile struct {
	ActionID      string
	Kind          SwingKind
	WindupTicks   int
	ActiveTicks   int
	RecoveryTicks int
}

// HitSegment is one contact circle along a weapon, offset from the
// wielder's position.
type HitSegment struct {
	OffsetM float64
	RadiusM float64
	Tag     string
}

// Weapon describes a melee weapon: the attacks it can perform and the
// segments that can land a hit. Weapons are immutable shared data; two
// fighters may hold the same Weapon value.
type Weapon struct {
	Profiles []AttackProfile
	Segments []HitSegment
	MassKG   float64
	EdgeType string // "blunt", "slash" or "pierce"
}

// MaxOffset returns the reach of the farthest hit segment in metres.
func (w Weapon) MaxOffset() float64 {
	var m float64
	for _, seg := range w.Segments {
		if seg.OffsetM > m {
			m = seg.OffsetM
		}
	}
	return m
}

// AttackState is the per-fighter melee state machine.
type AttackState struct {
	Phase      AttackPhase
	TicksLeft  int
	ProfileIdx int
	SwingID    int
	HasHit     bool // true after the first contact of the current swing
}
