// Package game owns the simulation: the grid, the occupancy index, the
// per-step spatial index and the update engine that ties them together.
package game

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/pthm-cable/lotka/components"
	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/systems"
	"github.com/pthm-cable/lotka/telemetry"
)

// Options holds construction-time knobs that are not part of the
// ecology configuration.
type Options struct {
	Seed      int64                // RNG seed (0 = time-based)
	Collector *telemetry.Collector // optional window stats collector
	Perf      *telemetry.PerfCollector
}

// Simulation is the single owner of all mutable state. It is created
// once and advanced only through Step. Accessors reflect state as of
// the last completed step.
type Simulation struct {
	cfg  *config.Config
	grid *systems.Grid
	rng  *rand.Rand
	step int

	// Occupancy index: authoritative coordinate sets per species,
	// rebuilt from the grid every step. Doubles as the counters.
	preyPos map[components.Coord]struct{}
	predPos map[components.Coord]struct{}

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	pool      *workerPool
	threshold int
}

// New validates the configuration, builds the grid and seeds the
// initial populations at uniformly random coordinates.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	grid, err := systems.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cfg:       cfg,
		grid:      grid,
		rng:       rand.New(rand.NewSource(seed)),
		preyPos:   make(map[components.Coord]struct{}, cfg.Prey.Initial),
		predPos:   make(map[components.Coord]struct{}, cfg.Predator.Initial),
		collector: opts.Collector,
		perf:      opts.Perf,
		threshold: cfg.Engine.ParallelThreshold,
	}

	s.seedPopulation()
	s.rescan()

	workers := cfg.Engine.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > 1 {
		s.pool = newWorkerPool(grid, workers, s.rng)
	}

	return s, nil
}

// Close stops the worker pool. The simulation must not be stepped
// afterwards.
func (s *Simulation) Close() {
	if s.pool != nil {
		s.pool.stop()
		s.pool = nil
	}
}

// Steps returns the number of completed steps.
func (s *Simulation) Steps() int { return s.step }

// PreyCount returns the live prey population.
func (s *Simulation) PreyCount() int { return len(s.preyPos) }

// PredatorCount returns the live predator population.
func (s *Simulation) PredatorCount() int { return len(s.predPos) }

// Extinct reports whether either species has died out.
func (s *Simulation) Extinct() bool {
	return len(s.preyPos) == 0 || len(s.predPos) == 0
}

// PreyPositions returns a copy of the prey coordinate set.
func (s *Simulation) PreyPositions() map[components.Coord]struct{} {
	return copySet(s.preyPos)
}

// PredatorPositions returns a copy of the predator coordinate set.
func (s *Simulation) PredatorPositions() map[components.Coord]struct{} {
	return copySet(s.predPos)
}

// Grid exposes the underlying grid for read-only inspection. Mutating
// sites through it outside Step breaks the occupancy invariants.
func (s *Simulation) Grid() *systems.Grid { return s.grid }

func copySet(src map[components.Coord]struct{}) map[components.Coord]struct{} {
	dst := make(map[components.Coord]struct{}, len(src))
	for c := range src {
		dst[c] = struct{}{}
	}
	return dst
}
