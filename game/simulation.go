package game

import (
	"github.com/pthm-cable/lotka/components"
	"github.com/pthm-cable/lotka/systems"
	"github.com/pthm-cable/lotka/telemetry"
)

// Step advances the simulation by exactly one step:
//
//  1. snapshot: one row-major grid scan classifying occupied sites
//  2. index: rebuild the nearest-prey kd-tree from the prey snapshot
//  3. predator phase: every snapshot predator is evaluated
//  4. prey phase: every snapshot prey still holding prey is evaluated
//  5. reconcile: rescan the grid into the occupancy index
//
// The predator phase always completes before the prey phase begins,
// and the next Step never starts before reconciliation is done.
// Neighborhoods are re-read fresh per organism, so mutations from
// earlier organisms in the same phase are visible to later ones.
func (s *Simulation) Step() {
	s.perf.StartStep()

	s.perf.StartPhase(telemetry.PhaseSnapshot)
	preyCells, predCells, preyCoords := s.rescan()

	s.perf.StartPhase(telemetry.PhaseIndex)
	index := systems.BuildPreyIndex(preyCoords)

	s.perf.StartPhase(telemetry.PhasePredators)
	s.runPhase(phasePredators, predCells, index)

	s.perf.StartPhase(telemetry.PhasePrey)
	s.runPhase(phasePrey, preyCells, index)

	s.perf.StartPhase(telemetry.PhaseReconcile)
	s.rescan()
	s.step++
	s.collector.RecordStep(len(s.preyPos), len(s.predPos))

	s.perf.EndStep()
}

// runPhase evaluates one species' snapshot cells, going through the
// worker pool when the phase is large enough to pay for it.
func (s *Simulation) runPhase(phase phaseKind, cells []int, index *systems.PreyIndex) {
	if len(cells) == 0 {
		return
	}

	var t tally
	if s.pool != nil && len(cells) >= s.threshold {
		t = s.pool.runPhase(phase, cells, index)
	} else {
		for _, idx := range cells {
			evaluate(s.grid, phase, idx, index, s.rng, &t)
		}
	}
	t.flushTo(s.collector)
}

// evaluate runs one organism's rule, re-checking the site still holds
// the expected species: a snapshot prey may have been hunted during
// the predator phase.
func evaluate(g *systems.Grid, phase phaseKind, idx int, index *systems.PreyIndex, rng systems.Rand, t *tally) {
	site := g.Site(idx)
	switch phase {
	case phasePredators:
		if site.Kind != components.KindPredator {
			return
		}
		nearest, ok := index.Nearest(site.Pos.X, site.Pos.Y)
		t.recordPredator(systems.StepPredator(g, idx, nearest, ok, rng))
	case phasePrey:
		if site.Kind != components.KindPrey {
			return
		}
		t.recordPrey(systems.StepPrey(g, idx, rng))
	}
}

// rescan rebuilds the occupancy index from the grid. The grid is the
// ground truth; the coordinate sets are never trusted incrementally.
// The returned cell lists are in row-major order, which fixes the
// phase iteration order and the kd-tree build order.
func (s *Simulation) rescan() (preyCells, predCells []int, preyCoords []components.Coord) {
	clear(s.preyPos)
	clear(s.predPos)

	for idx := 0; idx < s.grid.Len(); idx++ {
		site := s.grid.Site(idx)
		switch site.Kind {
		case components.KindPrey:
			s.preyPos[site.Pos] = struct{}{}
			preyCells = append(preyCells, idx)
			preyCoords = append(preyCoords, site.Pos)
		case components.KindPredator:
			s.predPos[site.Pos] = struct{}{}
			predCells = append(predCells, idx)
		}
	}
	return preyCells, predCells, preyCoords
}

// tally accumulates rule outcomes for one phase. Workers keep private
// tallies that are merged after the phase, so the collector is only
// touched from the engine goroutine.
type tally struct {
	preyBirths int
	preyDeaths int
	predBirths int
	predDeaths int
	hunts      int
	kills      int
}

func (t *tally) recordPrey(out systems.Outcome) {
	if out.Reproduced {
		t.preyBirths++
	}
}

func (t *tally) recordPredator(out systems.Outcome) {
	if out.Reproduced {
		t.predBirths++
	}
	if out.Died {
		t.predDeaths++
	}
	if out.Hunted {
		t.hunts++
	}
	if out.Killed {
		t.kills++
		t.preyDeaths++
	}
}

func (t *tally) add(o tally) {
	t.preyBirths += o.preyBirths
	t.preyDeaths += o.preyDeaths
	t.predBirths += o.predBirths
	t.predDeaths += o.predDeaths
	t.hunts += o.hunts
	t.kills += o.kills
}

func (t tally) flushTo(c *telemetry.Collector) {
	c.AddBirths(components.KindPrey, t.preyBirths)
	c.AddBirths(components.KindPredator, t.predBirths)
	c.AddDeaths(components.KindPrey, t.preyDeaths)
	c.AddDeaths(components.KindPredator, t.predDeaths)
	c.AddHunts(t.hunts, t.kills)
}
