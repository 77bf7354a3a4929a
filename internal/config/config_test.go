package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeYAML(t, `
seed: 42
ticks: 50
fighters: 4
log_level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, 50, c.Ticks)
	assert.Equal(t, 4, c.Fighters)
	assert.Equal(t, "debug", c.LogLevel)
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(20_000_000), c.DeltaNS)
	assert.Equal(t, 20.0, c.ArenaRadius)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeYAML(t, "ticks: [not a number"))
	require.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]func(*Sim){
		"negative ticks":    func(c *Sim) { c.Ticks = -1 },
		"zero delta":        func(c *Sim) { c.DeltaNS = 0 },
		"negative delta":    func(c *Sim) { c.DeltaNS = -5 },
		"zero arena":        func(c *Sim) { c.ArenaRadius = 0 },
		"odd fighters":      func(c *Sim) { c.Fighters = 3 },
		"negative fighters": func(c *Sim) { c.Fighters = -2 },
		"bad profile":       func(c *Sim) { c.Profile = "heap" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestValidateAcceptsProfileModes(t *testing.T) {
	for _, mode := range []string{"", "cpu", "mem"} {
		c := Default()
		c.Profile = mode
		require.NoError(t, c.Validate())
	}
}

func TestLoadValidates(t *testing.T) {
	_, err := Load(writeYAML(t, "fighters: 7"))
	require.Error(t, err)
}
