package component

// Stamina is a fighter's energy store.
type Stamina struct {
	MaxPts       float64
	CurrPts      float64
	RegenPerTick float64 // points restored per idle tick
	Exhausted    bool
}

// DefaultStamina returns a fresh, full stamina gauge. 0.2 points per
// 20 ms tick is 4 points per simulated second.
func DefaultStamina() Stamina {
	return Stamina{MaxPts: 100, CurrPts: 100, RegenPerTick: 0.2}
}

// MoraleState is a coarse band over the morale value.
type MoraleState string

const (
	Determined MoraleState = "DETERMINED"
	Composed   MoraleState = "COMPOSED"
	Uncertain  MoraleState = "UNCERTAIN"
	Fractured  MoraleState = "FRACTURED"
	Desperate  MoraleState = "DESPERATE"
)

// moraleBands maps each state to its inclusive lower bound, ordered
// high to low.
var moraleBands = []struct {
	state MoraleState
	lower float64
}{
	{Determined, 90},
	{Composed, 65},
	{Uncertain, 40},
	{Fractured, 15},
	{Desperate, 0},
}

// MoraleStateFor returns the band containing the given morale value.
func MoraleStateFor(value float64) MoraleState {
	for _, b := range moraleBands {
		if value >= b.lower {
			return b.state
		}
	}
	return Desperate
}

// Morale is a fighter's mental resilience gauge, 0 to 100. The value is
// fractional so slow erosion from blood loss is not lost to rounding.
type Morale struct {
	Value float64
	State MoraleState
}

// DefaultMorale returns a fully determined morale gauge.
func DefaultMorale() Morale {
	return Morale{Value: 100, State: Determined}
}
