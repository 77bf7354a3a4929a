package actiontable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableLoads(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 0)

	walk, ok := table.Get("walk_step")
	require.True(t, ok)
	assert.Equal(t, PhaseMove, walk.Phase)
	assert.Equal(t, 10, walk.Ticks)
	assert.Equal(t, 0.5, walk.DistM)
	assert.Equal(t, 1, walk.Stamina)

	_, ok = table.Get("moonwalk")
	assert.False(t, ok)
}

func TestAttackDurationDerivesFromTrio(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	slash, ok := table.Get("light_slash")
	require.True(t, ok)
	assert.Equal(t, PhaseAttack, slash.Phase)
	assert.Equal(t, 5, slash.Wind)
	assert.Equal(t, 3, slash.Hit)
	assert.Equal(t, 5, slash.Reco)
	assert.Equal(t, 13, slash.Ticks)
	assert.Equal(t, "swing", slash.Kind)

	thrust, ok := table.Get("straight_thrust")
	require.True(t, ok)
	assert.Equal(t, "thrust", thrust.Kind)
	assert.Equal(t, 16, thrust.Ticks)
}

func TestDefenceDurationDerivesFromTrio(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	parry, ok := table.Get("parry")
	require.True(t, ok)
	assert.Equal(t, PhaseDefend, parry.Phase)
	assert.Equal(t, 10, parry.Ticks)
}

func TestChainsAndEncumbranceLoad(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, table.Chains())
	c := table.Chains()[0]
	assert.Equal(t, "light_slash", c.Trigger)
	assert.Contains(t, c.NextIDs, "straight_thrust")
	assert.Negative(t, c.WindupDelta)

	m, ok := table.EncumbranceMult("armor", "heavy")
	require.True(t, ok)
	assert.Equal(t, 1.3, m)
	_, ok = table.EncumbranceMult("armor", "plate")
	assert.False(t, ok)
	_, ok = table.EncumbranceMult("shield", "heavy")
	assert.False(t, ok)
}

func TestEffectiveTicks(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	// Base case: no classes, no stats.
	ticks, err := table.EffectiveTicks("light_slash", Modifiers{})
	require.NoError(t, err)
	assert.Equal(t, 13, ticks)

	// Heavy armor and weapon stretch: 13 * 1.3 * 1.25 = 21.125 -> 21.
	ticks, err = table.EffectiveTicks("light_slash", Modifiers{
		ArmorClass: "heavy", WeaponClass: "heavy",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, ticks)

	// Coordination 20 shortens: 13 * 0.8 = 10.4 -> 10.
	ticks, err = table.EffectiveTicks("light_slash", Modifiers{Coordination: 20})
	require.NoError(t, err)
	assert.Equal(t, 10, ticks)

	// Perception only affects defence: parry 10 * 0.93 = 9.3 -> 9.
	ticks, err = table.EffectiveTicks("parry", Modifiers{Perception: 10})
	require.NoError(t, err)
	assert.Equal(t, 9, ticks)
	ticks, err = table.EffectiveTicks("light_slash", Modifiers{Perception: 10})
	require.NoError(t, err)
	assert.Equal(t, 13, ticks)

	// Exhaustion stretches by 15%: 13 * 1.15 = 14.95 -> 15.
	ticks, err = table.EffectiveTicks("light_slash", Modifiers{Exhausted: true})
	require.NoError(t, err)
	assert.Equal(t, 15, ticks)

	_, err = table.EffectiveTicks("moonwalk", Modifiers{})
	require.Error(t, err)
}

func TestEffectiveTicksNeverBelowOne(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	ticks, err := table.EffectiveTicks("light_slash", Modifiers{Coordination: 99})
	require.NoError(t, err)
	assert.Equal(t, 1, ticks)
}

func TestVersionHashIgnoresFormatting(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	require.Len(t, table.VersionHash(), 64)

	// Reformatting must not change the fingerprint.
	reformatted := "\n\n" + string(defaultTable) + "\n"
	again, err := parse([]byte(reformatted))
	require.NoError(t, err)
	assert.Equal(t, table.VersionHash(), again.VersionHash())

	// A balance change must.
	changed, err := parse([]byte(`{
		"locomotion": [ { "id": "walk_step", "ticks": 11, "dist_m": 0.5, "stam": 1 } ]
	}`))
	require.NoError(t, err)
	assert.NotEqual(t, table.VersionHash(), changed.VersionHash())
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actions.json")
	require.NoError(t, os.WriteFile(path, defaultTable, 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, mustDefault(t).Len(), table.Len())

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestRejectsZeroDurationRows(t *testing.T) {
	_, err := parse([]byte(`{"attacks":[{"id":"ghost","wind":0,"hit":0,"reco":0}]}`))
	require.Error(t, err)

	_, err = parse([]byte(`{"locomotion":[{"id":"stand"}]}`))
	require.Error(t, err)
}

func mustDefault(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}
