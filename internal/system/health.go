package system

import (
	"math"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/event"
)

// Tissue-stack constants for the damage pipeline.
const (
	boneHardnessFactor = 15.0 // joules per bone HP

	softEnergyPerHPSkin   = 10.0
	softEnergyPerHPMuscle = 7.0

	k1External = 5.0  // ml/s per cm of external wound depth
	k2Internal = 30.0 // ml/s floor for internal bleeds
)

// tissue layers walked by the penetration pipeline, outermost first.
var layers = []struct {
	name      string
	thickness float64 // cm
}{
	{"skin", 0.2},
	{"muscle", 2.0},
	{"bone", 1.3},
	{"organ", 1.0},
}

var totalStackCM = func() float64 {
	var t float64
	for _, l := range layers {
		t += l.thickness
	}
	return t
}()

var shearCoeff = map[string]float64{
	"blunt":  0.0,
	"slash":  0.6,
	"pierce": 1.0,
}

// speedBins and penTable map edge type and contact speed to the
// fraction of the tissue stack penetrated.
var speedBins = [3]float64{2.0, 5.0, 8.0}

var penTable = map[string][4]float64{
	"blunt":  {0.0, 0.1, 0.25, 0.40},
	"slash":  {0.05, 0.25, 0.60, 0.90},
	"pierce": {0.10, 0.40, 0.80, 1.00},
}

// penetrationFraction returns the stack fraction p in [0,1] for the
// given edge type and contact speed.
func penetrationFraction(edge string, speed float64) float64 {
	bins, ok := penTable[edge]
	if !ok {
		return 0
	}
	switch {
	case speed < speedBins[0]:
		return bins[0]
	case speed < speedBins[1]:
		return bins[1]
	case speed < speedBins[2]:
		return bins[2]
	}
	return bins[3]
}

// Damage consumes Impact events and mutates the defender's anatomy:
// crush energy bruises soft tissue or breaks bone, shear energy walks
// the tissue stack and can reach organs. Depleted layers open bleed
// sources; a destroyed organ kills the defender on the spot.
type Damage struct{}

func (Damage) Priority() int { return PriorityDamage }

func (Damage) Update(w *ecs.World, dtNS int64) error {
	anat := ecs.StoreFor[component.Anatomy](w)
	bleed := ecs.StoreFor[component.Bleeding](w)

	for _, hit := range ecs.ConsumeEvents[event.Impact](w) {
		a, ok := anat.Get(hit.Defender)
		if !ok {
			continue
		}
		limb := &a.Limbs[hit.RegionIdx]
		b, _ := bleed.Get(hit.Defender)

		// Penetration depth comes from edge and speed; the crush share
		// of the kinetic energy drives the blunt pipeline.
		keTotal := 0.5 * hit.Mass * hit.RelSpeed * hit.RelSpeed
		keCrush := keTotal * (1 - shearCoeff[hit.EdgeType])

		// Crush pipeline: bruise below the bone threshold, fracture above.
		threshold := float64(component.BoneBreakThresholdJ[limb.Name])
		if keCrush < threshold {
			limb.CurrSkin = max(0, limb.CurrSkin-max(1, int(keCrush*0.33/softEnergyPerHPSkin)))
			limb.CurrMuscle = max(0, limb.CurrMuscle-max(1, int(keCrush*0.67/softEnergyPerHPMuscle)))
		} else {
			excess := keCrush - threshold
			boneDmg := max(1, int(math.Round(excess/boneHardnessFactor)))
			limb.CurrBone = max(0, limb.CurrBone-boneDmg)

			if limb.BoneFractured() && hit.RegionIdx < len(a.Organs) {
				for i := range a.Organs[hit.RegionIdx] {
					organ := &a.Organs[hit.RegionIdx][i]
					if w.RNG.Float64() >= 0.25 {
						continue
					}
					organ.CurrHP = max(0, organ.CurrHP-1)
					rate := math.Max(k2Internal, organ.BaseCatRate)
					b.Sources = append(b.Sources, component.BleedSource{
						RegionIdx: hit.RegionIdx, RateMLSec: rate, Internal: true,
					})
					if organ.CurrHP <= 0 {
						kill(w, hit.Defender, "organ_failure")
					}
				}
			}
		}

		// Shear pipeline: walk the stack to the penetration depth.
		remaining := penetrationFraction(hit.EdgeType, hit.RelSpeed) * totalStackCM
		for _, layer := range layers {
			if remaining <= 0 {
				break
			}
			if layer.name == "organ" {
				organs := a.Organs[hit.RegionIdx]
				if len(organs) == 0 {
					break
				}
				organ := &organs[w.RNG.Intn(len(organs))]
				proportion := math.Min(1, remaining/layer.thickness)
				dmg := max(1, int(proportion*float64(organ.MaxHP)))
				organ.CurrHP = max(0, organ.CurrHP-dmg)
				rate := math.Max(organ.BaseCatRate, k2Internal*float64(dmg)/float64(organ.MaxHP))
				b.Sources = append(b.Sources, component.BleedSource{
					RegionIdx: hit.RegionIdx, RateMLSec: rate, Internal: true,
				})
				if organ.CurrHP <= 0 {
					kill(w, hit.Defender, "organ_failure")
				}
				break
			}

			pool := math.Min(remaining, layer.thickness)
			proportion := pool / layer.thickness

			switch layer.name {
			case "skin":
				prev := limb.CurrSkin
				dmg := max(1, int(math.Ceil(proportion*float64(limb.MaxSkin))))
				limb.CurrSkin = max(0, limb.CurrSkin-dmg)
				if prev > 0 && limb.CurrSkin == 0 {
					b.Sources = append(b.Sources, component.BleedSource{
						RegionIdx: hit.RegionIdx, RateMLSec: k1External * proportion,
					})
				}
			case "muscle":
				prev := limb.CurrMuscle
				dmg := max(1, int(math.Ceil(proportion*float64(limb.MaxMuscle))))
				limb.CurrMuscle = max(0, limb.CurrMuscle-dmg)
				if prev > 0 && limb.CurrMuscle == 0 {
					b.Sources = append(b.Sources, component.BleedSource{
						RegionIdx: hit.RegionIdx, RateMLSec: k1External * proportion,
					})
				}
			case "bone":
				dmg := max(1, int(math.Ceil(proportion*float64(limb.MaxBone))))
				limb.CurrBone = max(0, limb.CurrBone-dmg)
			}
			remaining -= pool
		}

		bleed.Add(hit.Defender, b)
		anat.Add(hit.Defender, a)
	}
	return nil
}

// Bleed drains blood from every open bleed source and kills by
// exsanguination at zero.
type Bleed struct{}

func (Bleed) Priority() int { return PriorityBleed }

func (Bleed) Update(w *ecs.World, dtNS int64) error {
	dtS := float64(dtNS) * 1e-9
	vit := ecs.StoreFor[component.Vitals](w)
	bleed := ecs.StoreFor[component.Bleeding](w)

	for _, e := range sortedIDs(vit) {
		v, _ := vit.Get(e)
		if !v.Alive {
			continue
		}
		var total float64
		if b, ok := bleed.Get(e); ok {
			for _, src := range b.Sources {
				total += src.RateMLSec
			}
		}
		v.LossRateMLSec = total
		v.BloodML -= total * dtS
		if v.BloodML <= 0 {
			v.BloodML = 0
			v.Alive = false
			vit.Add(e, v)
			w.PostEvent(event.Death{Tick: w.Tick, Entity: e, Cause: "exsanguination"})
			w.Defer(event.Despawn{Entity: e})
			continue
		}
		vit.Add(e, v)
	}
	return nil
}

// kill marks the entity dead, broadcasts Death and defers its despawn.
func kill(w *ecs.World, e ecs.EntityID, cause string) {
	vit := ecs.StoreFor[component.Vitals](w)
	if v, ok := vit.Get(e); ok && v.Alive {
		v.Alive = false
		vit.Add(e, v)
		w.PostEvent(event.Death{Tick: w.Tick, Entity: e, Cause: cause})
		w.Defer(event.Despawn{Entity: e})
	}
}
