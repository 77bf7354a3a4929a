// Package actiontable is the single source of truth for movement,
// attack and defence timing: a catalogue of action specs loaded from a
// JSON balance table, plus the stat- and encumbrance-aware duration
// calculator and a fingerprint hash that regression harnesses store
// alongside baseline metrics.
package actiontable

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"math"
	"os"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Phase classifies an action.
type Phase string

const (
	PhaseMove   Phase = "MOVE"
	PhaseAttack Phase = "ATTACK"
	PhaseDefend Phase = "DEFEND"
)

// ActionSpec is one catalogue row. The phase-specific tick trio is zero
// for actions of other phases.
type ActionSpec struct {
	ID      string
	Phase   Phase
	Ticks   int
	DistM   float64
	Stamina int
	Kind    string // attack rows only: "swing" or "thrust"

	// Attack trio.
	Wind, Hit, Reco int
	// Defence trio.
	React, Active, Reset int
}

// ChainMod shortens the windup of a follow-up action after a trigger.
type ChainMod struct {
	Trigger     string
	NextIDs     []string
	WindupDelta int
}

// Modifiers feed EffectiveTicks. The zero value means an unencumbered,
// fresh fighter with no stat bonuses.
type Modifiers struct {
	ArmorClass   string
	WeaponClass  string
	Coordination int
	Perception   int
	Exhausted    bool
}

// Table is an immutable, loaded action catalogue.
type Table struct {
	actions map[string]ActionSpec
	chains  []ChainMod
	encMult map[string]map[string]float64
	hash    string
}

//go:embed actions.json
var defaultTable []byte

// Default parses the embedded balance table.
func Default() (*Table, error) {
	return parse(defaultTable)
}

// Load reads and parses a balance table from disk.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "actiontable: reading %s", path)
	}
	t, err := parse(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "actiontable: parsing %s", path)
	}
	return t, nil
}

type rawAction struct {
	ID     string  `json:"id"`
	Ticks  *int    `json:"ticks"`
	DistM  float64 `json:"dist_m"`
	Stam   int     `json:"stam"`
	Kind   string  `json:"kind"`
	Wind   int     `json:"wind"`
	Hit    int     `json:"hit"`
	Reco   int     `json:"reco"`
	React  int     `json:"react"`
	Active int     `json:"active"`
	Reset  int     `json:"reset"`
}

type rawChain struct {
	Trigger string   `json:"trigger"`
	Next    []string `json:"next"`
	Delta   int      `json:"delta"`
}

type rawTable struct {
	EncumbranceMult map[string]map[string]float64 `json:"encumbrance_mult"`
	Locomotion      []rawAction                   `json:"locomotion"`
	Attacks         []rawAction                   `json:"attacks"`
	Defence         []rawAction                   `json:"defence"`
	Chains          []rawChain                    `json:"chains"`
}

func parse(raw []byte) (*Table, error) {
	var rt rawTable
	if err := json.Unmarshal(raw, &rt); err != nil {
		return nil, eris.Wrap(err, "actiontable: decoding table")
	}

	t := &Table{
		actions: make(map[string]ActionSpec),
		encMult: rt.EncumbranceMult,
	}

	load := func(rows []rawAction, phase Phase) error {
		for _, row := range rows {
			ticks := 0
			switch {
			case row.Ticks != nil:
				ticks = *row.Ticks
			case phase == PhaseAttack:
				ticks = row.Wind + row.Hit + row.Reco
			case phase == PhaseDefend:
				ticks = row.React + row.Active + row.Reset
			default:
				return eris.Errorf("actiontable: locomotion action %q lacks a ticks field", row.ID)
			}
			if ticks <= 0 {
				return eris.Errorf("actiontable: action %q has non-positive duration", row.ID)
			}
			t.actions[row.ID] = ActionSpec{
				ID:      row.ID,
				Phase:   phase,
				Ticks:   ticks,
				DistM:   row.DistM,
				Stamina: row.Stam,
				Kind:    row.Kind,
				Wind:    row.Wind, Hit: row.Hit, Reco: row.Reco,
				React: row.React, Active: row.Active, Reset: row.Reset,
			}
		}
		return nil
	}
	if err := load(rt.Locomotion, PhaseMove); err != nil {
		return nil, err
	}
	if err := load(rt.Attacks, PhaseAttack); err != nil {
		return nil, err
	}
	if err := load(rt.Defence, PhaseDefend); err != nil {
		return nil, err
	}

	for _, c := range rt.Chains {
		t.chains = append(t.chains, ChainMod{
			Trigger:     c.Trigger,
			NextIDs:     c.Next,
			WindupDelta: c.Delta,
		})
	}

	hash, err := canonicalHash(raw)
	if err != nil {
		return nil, err
	}
	t.hash = hash
	return t, nil
}

// canonicalHash re-marshals the decoded payload (object keys sorted) so
// the fingerprint is stable under whitespace and key-order changes.
func canonicalHash(raw []byte) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", eris.Wrap(err, "actiontable: decoding for fingerprint")
	}
	canon, err := json.Marshal(v)
	if err != nil {
		return "", eris.Wrap(err, "actiontable: canonicalising for fingerprint")
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the spec for an action id.
func (t *Table) Get(id string) (ActionSpec, bool) {
	spec, ok := t.actions[id]
	return spec, ok
}

// Len returns the number of catalogued actions.
func (t *Table) Len() int {
	return len(t.actions)
}

// Chains returns the loaded chain modifiers.
func (t *Table) Chains() []ChainMod {
	return t.chains
}

// EncumbranceMult returns the duration multiplier for an equipment
// class, e.g. ("armor", "heavy").
func (t *Table) EncumbranceMult(kind, class string) (float64, bool) {
	classes, ok := t.encMult[kind]
	if !ok {
		return 0, false
	}
	m, ok := classes[class]
	return m, ok
}

// VersionHash is the SHA-256 fingerprint of the canonicalised table.
// When a designer changes balance, the hash changes, telling regression
// harnesses that a re-baseline is required.
func (t *Table) VersionHash() string {
	return t.hash
}

// EffectiveTicks returns the final integer duration for an action after
// encumbrance, stat and exhaustion modifiers. Coordination shortens
// everything; perception additionally shortens defensive reactions;
// exhaustion stretches the result by 15%. The floor is one tick.
func (t *Table) EffectiveTicks(actionID string, m Modifiers) (int, error) {
	spec, ok := t.actions[actionID]
	if !ok {
		return 0, eris.Errorf("actiontable: unknown action %q", actionID)
	}
	d := float64(spec.Ticks)
	if mult, ok := t.EncumbranceMult("armor", m.ArmorClass); ok {
		d *= mult
	}
	if mult, ok := t.EncumbranceMult("weapon", m.WeaponClass); ok {
		d *= mult
	}
	d *= 1 - 0.01*float64(m.Coordination)
	if spec.Phase == PhaseDefend {
		d *= 1 - 0.007*float64(m.Perception)
	}
	if m.Exhausted {
		d *= 1.15
	}
	if ticks := int(math.Round(d)); ticks > 1 {
		return ticks, nil
	}
	return 1, nil
}
