package ecs

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultDeltaNS is the recommended fixed step: 20 ms, i.e. 50 steps
// per second of simulated time.
const DefaultDeltaNS int64 = 20_000_000

// ProfileEnv enables per-system timing diagnostics on stderr when set
// to "1". The variable is read once at scheduler construction.
const ProfileEnv = "ARENA_PROFILE"

// FixedStepScheduler drives the simulation: each tick increments the
// world's tick counter, invokes every system in priority order with a
// fixed delta-time, then flushes the world's transient queues.
//
// The execution order is frozen at construction. To add or remove
// systems, build a new scheduler from a fresh Registry snapshot.
type FixedStepScheduler struct {
	systems []System
	names   []string
	dtNS    int64
	profile io.Writer // nil when profiling is off
}

// SchedulerOption configures a FixedStepScheduler at construction.
type SchedulerOption func(*FixedStepScheduler)

// WithProfileWriter enables profiling mode and redirects the timing
// lines to w, regardless of the ARENA_PROFILE environment variable.
func WithProfileWriter(w io.Writer) SchedulerOption {
	return func(s *FixedStepScheduler) {
		s.profile = w
	}
}

// NewFixedStepScheduler builds a scheduler over the given systems with
// a fixed delta-time in nanoseconds. The slice is copied and
// stable-sorted by priority once; equal priorities keep their input
// order. A non-positive delta-time is a configuration error and is
// reported here rather than on the first tick.
func NewFixedStepScheduler(systems []System, dtNS int64, opts ...SchedulerOption) (*FixedStepScheduler, error) {
	if dtNS <= 0 {
		return nil, eris.Errorf("ecs: fixed delta-time must be positive, got %d ns", dtNS)
	}
	s := &FixedStepScheduler{
		systems: make([]System, len(systems)),
		dtNS:    dtNS,
	}
	copy(s.systems, systems)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
	s.names = make([]string, len(s.systems))
	for i, sys := range s.systems {
		s.names[i] = SystemName(sys)
	}
	if os.Getenv(ProfileEnv) == "1" {
		s.profile = os.Stderr
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DeltaNS returns the fixed step in nanoseconds.
func (s *FixedStepScheduler) DeltaNS() int64 {
	return s.dtNS
}

// Run advances the world by exactly numTicks fixed steps. A system
// error propagates immediately, aborting the remaining systems of the
// current tick and all later ticks; there is no retry and no
// partial-tick rollback. The returned error wraps the system's error
// with the failing system and tick.
func (s *FixedStepScheduler) Run(numTicks int, w *World) error {
	if s.profile != nil {
		return s.runProfiled(numTicks, w)
	}
	dt := s.dtNS
	for range numTicks {
		w.Tick++
		for i, sys := range s.systems {
			if err := sys.Update(w, dt); err != nil {
				return eris.Wrapf(err, "ecs: system %s failed at tick %d", s.names[i], w.Tick)
			}
		}
		w.Flush()
	}
	return nil
}

// runProfiled is Run with a monotonic timer around every system
// invocation, one line per system per tick. Execution order and
// semantics are identical to the fast path.
func (s *FixedStepScheduler) runProfiled(numTicks int, w *World) error {
	dt := s.dtNS
	for range numTicks {
		w.Tick++
		for i, sys := range s.systems {
			start := time.Now()
			err := sys.Update(w, dt)
			fmt.Fprintf(s.profile, "%s %d ns\n", s.names[i], time.Since(start).Nanoseconds())
			if err != nil {
				return eris.Wrapf(err, "ecs: system %s failed at tick %d", s.names[i], w.Tick)
			}
		}
		w.Flush()
	}
	return nil
}
