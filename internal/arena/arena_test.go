package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/actiontable"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
)

func TestBuildMaul(t *testing.T) {
	table, err := actiontable.Default()
	require.NoError(t, err)

	maul, err := BuildMaul(table)
	require.NoError(t, err)

	assert.Equal(t, 5.0, maul.MassKG)
	assert.Equal(t, "blunt", maul.EdgeType)
	assert.Equal(t, 1.2, maul.MaxOffset())
	require.Len(t, maul.Segments, 3)

	require.Len(t, maul.Profiles, len(maulActions))
	byID := make(map[string]component.AttackProfile)
	for _, p := range maul.Profiles {
		byID[p.ActionID] = p
	}
	slash, ok := byID["light_slash"]
	require.True(t, ok)
	assert.Equal(t, component.KindSwing, slash.Kind)
	assert.Equal(t, 5, slash.WindupTicks)
	assert.Equal(t, 3, slash.ActiveTicks)
	assert.Equal(t, 5, slash.RecoveryTicks)

	thrust, ok := byID["straight_thrust"]
	require.True(t, ok)
	assert.Equal(t, component.KindThrust, thrust.Kind)
	assert.Equal(t, 6, thrust.WindupTicks)
	assert.Equal(t, 4, thrust.ActiveTicks)
	assert.Equal(t, 6, thrust.RecoveryTicks)
}

func TestBuildMaulMissingAction(t *testing.T) {
	empty, err := actiontable.Load("testdata/empty.json")
	require.NoError(t, err)
	_, err = BuildMaul(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "light_slash")
}

func TestSpawnFighterPair(t *testing.T) {
	table, err := actiontable.Default()
	require.NoError(t, err)
	w := ecs.NewWorld(1)

	pair, err := SpawnFighterPair(w, table)
	require.NoError(t, err)
	a, b := pair[0], pair[1]
	assert.NotEqual(t, a, b)

	pos := ecs.StoreFor[component.Position](w)
	pa, ok := pos.Get(a)
	require.True(t, ok)
	pb, ok := pos.Get(b)
	require.True(t, ok)
	assert.InDelta(t, DefaultSeparationM, pb.X-pa.X, 1e-12)
	assert.Equal(t, 0.0, pa.Y)

	opp := ecs.StoreFor[component.Opponent](w)
	oa, _ := opp.Get(a)
	ob, _ := opp.Get(b)
	assert.Equal(t, b, oa.Target)
	assert.Equal(t, a, ob.Target)

	// Full component loadout.
	for _, e := range pair {
		_, ok := ecs.StoreFor[component.Radius](w).Get(e)
		assert.True(t, ok)
		_, ok = ecs.StoreFor[component.Weapon](w).Get(e)
		assert.True(t, ok)
		s, ok := ecs.StoreFor[component.Stamina](w).Get(e)
		assert.True(t, ok)
		assert.Equal(t, s.MaxPts, s.CurrPts)
		m, ok := ecs.StoreFor[component.Morale](w).Get(e)
		assert.True(t, ok)
		assert.Equal(t, component.Determined, m.State)
		v, ok := ecs.StoreFor[component.Vitals](w).Get(e)
		assert.True(t, ok)
		assert.True(t, v.Alive)
		anat, ok := ecs.StoreFor[component.Anatomy](w).Get(e)
		assert.True(t, ok)
		assert.Len(t, anat.Limbs, len(component.Regions))
	}
}
