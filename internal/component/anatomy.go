package component

// Limb is the hit-point container for one body region, layered
// skin → muscle → bone.
type Limb struct {
	Name       string
	MaxSkin    int
	MaxMuscle  int
	MaxBone    int
	CurrSkin   int
	CurrMuscle int
	CurrBone   int
}

// BoneFractured reports whether the region's bone HP is depleted.
func (l Limb) BoneFractured() bool {
	return l.CurrBone <= 0
}

// Organ is a vital organ embedded within a region.
type Organ struct {
	Name        string
	MaxHP       int
	CurrHP      int
	BaseCatRate float64 // ml/s catastrophic bleed minimum
}

// Vitals is the circulatory state in millilitres.
type Vitals struct {
	BloodML       float64
	MaxBloodML    float64
	LossRateMLSec float64
	Alive         bool
}

// DefaultVitals returns a living fighter's circulatory state.
func DefaultVitals() Vitals {
	return Vitals{BloodML: 5000, MaxBloodML: 5000, Alive: true}
}

// BleedSource is a single wound emitting blood each tick.
type BleedSource struct {
	RegionIdx int
	RateMLSec float64
	Internal  bool
}

// Bleeding collects an entity's open bleed sources.
type Bleeding struct {
	Sources []BleedSource
}

// Anatomy holds a fighter's regions and their embedded organs, aligned
// index-for-index with Regions.
type Anatomy struct {
	Limbs  []Limb
	Organs [][]Organ // nil for regions without vital organs
}

// Regions lists body regions in anatomy index order.
var Regions = []string{
	"head",
	"neck",
	"thorax",
	"abdomen",
	"left_arm",
	"right_arm",
	"left_leg",
	"right_leg",
}

var vitalOrgans = map[string][]string{
	"head":    {"brain"},
	"neck":    {"carotid"},
	"thorax":  {"heart", "left_lung", "right_lung"},
	"abdomen": {"liver", "spleen", "left_kidney", "right_kidney"},
}

var catastrophicBleedRate = map[string]float64{
	"brain":        0,
	"carotid":      150,
	"heart":        120,
	"left_lung":    20,
	"right_lung":   20,
	"liver":        50,
	"spleen":       60,
	"left_kidney":  30,
	"right_kidney": 30,
}

var defaultLimbHP = map[string][3]int{
	"head":      {15, 25, 20},
	"neck":      {10, 10, 0},
	"thorax":    {18, 30, 18},
	"abdomen":   {18, 28, 15},
	"left_arm":  {12, 22, 12},
	"right_arm": {12, 22, 12},
	"left_leg":  {14, 24, 14},
	"right_leg": {14, 24, 14},
}

var defaultOrganHP = map[string]int{
	"brain":        15,
	"carotid":      10,
	"heart":        15,
	"left_lung":    12,
	"right_lung":   12,
	"liver":        15,
	"spleen":       12,
	"left_kidney":  10,
	"right_kidney": 10,
}

// BoneBreakThresholdJ is the crush energy in joules below which a
// region takes only soft-tissue damage.
var BoneBreakThresholdJ = map[string]int{
	"head":      80,
	"neck":      60,
	"thorax":    120,
	"abdomen":   100,
	"left_arm":  60,
	"right_arm": 60,
	"left_leg":  60,
	"right_leg": 60,
}

// DefaultAnatomy builds the standard eight-region anatomy with organs
// in the head, neck, thorax and abdomen.
func DefaultAnatomy() Anatomy {
	a := Anatomy{
		Limbs:  make([]Limb, 0, len(Regions)),
		Organs: make([][]Organ, 0, len(Regions)),
	}
	for _, r := range Regions {
		hp := defaultLimbHP[r]
		a.Limbs = append(a.Limbs, Limb{
			Name:    r,
			MaxSkin: hp[0], MaxMuscle: hp[1], MaxBone: hp[2],
			CurrSkin: hp[0], CurrMuscle: hp[1], CurrBone: hp[2],
		})
		names := vitalOrgans[r]
		if len(names) == 0 {
			a.Organs = append(a.Organs, nil)
			continue
		}
		organs := make([]Organ, 0, len(names))
		for _, o := range names {
			organs = append(organs, Organ{
				Name:        o,
				MaxHP:       defaultOrganHP[o],
				CurrHP:      defaultOrganHP[o],
				BaseCatRate: catastrophicBleedRate[o],
			})
		}
		a.Organs = append(a.Organs, organs)
	}
	return a
}
