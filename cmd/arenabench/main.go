// Command arenabench runs a headless duel and reports throughput. It is
// the harness used to watch per-tick cost as systems grow, with
// optional cpu/mem profiling via the profile config knob.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/actiontable"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/arena"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/component"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/config"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/ecs"
	"github.com/sdrawkcaBdeT/iron-ledger-mono/internal/system"
)

// warmupTicks run before the timer starts so allocator and map growth
// do not pollute the measurement.
const warmupTicks = 10

// emptyRunBudget is the total wall-clock ceiling for a run with no
// fighters. Blowing it means scheduler overhead regressed, so the
// process exits nonzero.
const emptyRunBudget = time.Millisecond

func main() {
	var (
		cfgPath  = flag.String("config", "", "YAML config file (optional)")
		seed     = flag.Int64("seed", 0, "override RNG seed")
		ticks    = flag.Int("ticks", -1, "override tick count")
		fighters = flag.Int("fighters", -1, "override fighter count (must be even)")
		prof     = flag.String("profile", "", "override profiling mode: cpu or mem")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			logger.Fatal().Err(err).Msg("loading config")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}
	if *fighters >= 0 {
		cfg.Fighters = *fighters
	}
	if *prof != "" {
		cfg.Profile = *prof
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("benchmark failed")
		os.Exit(1)
	}
}

func run(cfg config.Sim, logger zerolog.Logger) error {
	table, err := loadTable(cfg)
	if err != nil {
		return err
	}
	logger.Info().
		Str("actions_hash", table.VersionHash()).
		Int("actions", table.Len()).
		Msg("action catalogue loaded")

	w := ecs.NewWorld(cfg.Seed)
	if err := spawn(w, table, cfg.Fighters); err != nil {
		return err
	}

	var reg ecs.Registry
	reg.Register(system.Movement{})
	reg.Register(system.NewCollision(cfg.ArenaRadius))
	reg.Register(system.Attack{})
	reg.Register(system.Recovery{})
	reg.Register(system.Fatigue{Actions: table})
	reg.Register(system.Morale{})
	reg.Register(system.Damage{})
	reg.Register(system.Bleed{})
	reg.Register(system.Reaper{})

	sched, err := ecs.NewFixedStepScheduler(reg.Systems(), cfg.DeltaNS)
	if err != nil {
		return err
	}

	if err := sched.Run(warmupTicks, w); err != nil {
		return eris.Wrap(err, "warmup")
	}

	start := time.Now()
	if err := sched.Run(cfg.Ticks, w); err != nil {
		return err
	}
	elapsed := time.Since(start)

	perTick := time.Duration(0)
	if cfg.Ticks > 0 {
		perTick = elapsed / time.Duration(cfg.Ticks)
	}
	simulated := time.Duration(cfg.DeltaNS) * time.Duration(cfg.Ticks)
	logger.Info().
		Int("ticks", cfg.Ticks).
		Int("fighters", cfg.Fighters).
		Dur("elapsed", elapsed).
		Dur("per_tick", perTick).
		Dur("simulated", simulated).
		Uint64("final_tick", w.Tick).
		Msg("run complete")

	if budgetExceeded(cfg.Fighters, cfg.Ticks, elapsed) {
		return eris.Errorf("arenabench: empty-world run took %s, budget is %s", elapsed, emptyRunBudget)
	}
	return nil
}

// budgetExceeded gates the empty-world regression check: the whole
// timed run, not one tick, must fit the budget.
func budgetExceeded(fighters, ticks int, elapsed time.Duration) bool {
	return fighters == 0 && ticks > 0 && elapsed > emptyRunBudget
}

func loadTable(cfg config.Sim) (*actiontable.Table, error) {
	if cfg.ActionsPath != "" {
		return actiontable.Load(cfg.ActionsPath)
	}
	return actiontable.Default()
}

// spawn places fighters/2 duelling pairs on parallel rows two arena
// radii short of the rim, so pairs never interfere with each other.
func spawn(w *ecs.World, table *actiontable.Table, fighters int) error {
	pos := ecs.StoreFor[component.Position](w)
	for i := range fighters / 2 {
		pair, err := arena.SpawnFighterPair(w, table)
		if err != nil {
			return err
		}
		rowY := float64(i) * 4 * arena.DefaultFighterR
		for _, e := range pair {
			p, _ := pos.Get(e)
			p.Y += rowY
			pos.Add(e, p)
		}
	}
	return nil
}
