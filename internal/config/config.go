// Package config loads benchmark-run settings from YAML.
package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Sim holds every knob of a benchmark run. Zero-valued fields fall back
// to the defaults from Default().
type Sim struct {
	Seed        int64   `yaml:"seed"`
	Ticks       int     `yaml:"ticks"`
	DeltaNS     int64   `yaml:"delta_ns"`
	ArenaRadius float64 `yaml:"arena_radius"`
	Fighters    int     `yaml:"fighters"`
	ActionsPath string  `yaml:"actions_path"` // empty = embedded catalogue
	LogLevel    string  `yaml:"log_level"`
	Profile     string  `yaml:"profile"` // "", "cpu" or "mem"
}

// Default returns the stock benchmark configuration: one fighter pair,
// a thousand 20 ms ticks in a 20 m arena.
func Default() Sim {
	return Sim{
		Seed:        1,
		Ticks:       1000,
		DeltaNS:     20_000_000,
		ArenaRadius: 20,
		Fighters:    2,
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Sim, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Sim{}, eris.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Sim{}, eris.Wrapf(err, "config: parsing %s", path)
	}
	if err := c.Validate(); err != nil {
		return Sim{}, err
	}
	return c, nil
}

// Validate rejects configurations the engine cannot run.
func (c Sim) Validate() error {
	if c.Ticks < 0 {
		return eris.Errorf("config: ticks must be non-negative, got %d", c.Ticks)
	}
	if c.DeltaNS <= 0 {
		return eris.Errorf("config: delta_ns must be positive, got %d", c.DeltaNS)
	}
	if c.ArenaRadius <= 0 {
		return eris.Errorf("config: arena_radius must be positive, got %g", c.ArenaRadius)
	}
	if c.Fighters < 0 || c.Fighters%2 != 0 {
		return eris.Errorf("config: fighters must be a non-negative even number, got %d", c.Fighters)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("config: profile must be empty, cpu or mem, got %q", c.Profile)
	}
	return nil
}
