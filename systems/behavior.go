package systems

import "github.com/pthm-cable/lotka/components"

// Rand is the randomness the rules draw from. *rand.Rand satisfies it;
// tests substitute scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Outcome reports what an organism did during one evaluation.
type Outcome struct {
	Vacated    bool // the originating site no longer holds this organism
	Died       bool // predator only: natural death or starvation
	Reproduced bool
	Hunted     bool // predator only: a prey neighbor existed and was attacked
	Killed     bool // predator only: the attack succeeded
}

// StepPrey evaluates the prey at site idx for one step.
//
// Reproduction comes first: with 1-3 prey neighbors (under- and
// over-crowding both suppress it) and a successful draw against the
// reproduction rate, a copy of the parent is placed into a random
// empty neighbor and the parent stays. Otherwise a draw against the
// moving factor relocates the prey into a random empty neighbor.
// With no empty neighbors nothing can happen.
func StepPrey(g *Grid, idx int, rng Rand) Outcome {
	site := g.Site(idx)
	if site.Kind != components.KindPrey {
		return Outcome{}
	}

	var empty []int
	preyNeighbors := 0
	for _, n := range g.Neighbors(idx) {
		switch g.Site(n).Kind {
		case components.KindEmpty:
			empty = append(empty, n)
		case components.KindPrey:
			preyNeighbors++
		}
	}
	if len(empty) == 0 {
		return Outcome{}
	}

	if preyNeighbors > 0 && preyNeighbors < 4 && rng.Float64() < site.Prey.ReproductionRate {
		child := g.Site(empty[rng.Intn(len(empty))])
		child.SetPrey(site.Prey)
		return Outcome{Reproduced: true}
	}

	if rng.Float64() < site.Prey.MovingFactor {
		dst := g.Site(empty[rng.Intn(len(empty))])
		dst.SetPrey(site.Prey)
		site.Clear()
		return Outcome{Vacated: true}
	}

	return Outcome{}
}

// StepPredator evaluates the predator at site idx for one step.
// nearest is the current nearest-prey query result; ok is false when
// no prey exist.
//
// Order matters and is fixed: hunger increments, then the death check
// (natural draw or starvation) preempts everything else. Hunting runs
// before reproduction and movement so a freshly emptied prey site is
// reusable within this same evaluation; reproduction runs before
// movement because movement may consume the last empty neighbor. A
// predator at or past half its starvation threshold is too weak to
// reproduce or move.
func StepPredator(g *Grid, idx int, nearest components.Coord, ok bool, rng Rand) Outcome {
	site := g.Site(idx)
	if site.Kind != components.KindPredator {
		return Outcome{}
	}

	site.Hunger++
	if rng.Float64() < site.Predator.DeathRate || site.Hunger >= site.Predator.DeathAfter {
		site.Clear()
		return Outcome{Vacated: true, Died: true}
	}

	var out Outcome
	neighbors := g.Neighbors(idx)

	// One hunting attempt per step, against the first prey neighbor in
	// adjacency order.
	for _, n := range neighbors {
		nb := g.Site(n)
		if nb.Kind != components.KindPrey {
			continue
		}
		out.Hunted = true
		if rng.Float64() < site.Predator.HuntingFactor {
			nb.Clear()
			site.Hunger = 0
			out.Killed = true
		}
		break
	}

	if 2*site.Hunger >= site.Predator.DeathAfter {
		return out
	}

	// Classified after hunting: a hunted site counts as empty here.
	var empty []int
	predatorNeighbors := 0
	for _, n := range neighbors {
		switch g.Site(n).Kind {
		case components.KindEmpty:
			empty = append(empty, n)
		case components.KindPredator:
			predatorNeighbors++
		}
	}
	if len(empty) == 0 {
		return out
	}

	if predatorNeighbors > 0 && predatorNeighbors < 4 && rng.Float64() < site.Predator.ReproductionRate {
		child := g.Site(empty[rng.Intn(len(empty))])
		child.SetPredator(site.Predator, site.Predator.InitialHunger)
		out.Reproduced = true
		return out
	}

	if ok {
		tx := site.Pos.X + stepAxis(site.Pos.X, nearest.X, g.width)
		ty := site.Pos.Y + stepAxis(site.Pos.Y, nearest.Y, g.height)
		tx, ty = g.Wrap(tx, ty)
		target := g.Index(tx, ty)
		for _, n := range empty {
			if n == target {
				dst := g.Site(n)
				dst.SetPredator(site.Predator, site.Hunger)
				site.Clear()
				out.Vacated = true
				return out
			}
		}
	}

	// No prey known, or the chase target is blocked: wander.
	dst := g.Site(empty[rng.Intn(len(empty))])
	dst.SetPredator(site.Predator, site.Hunger)
	site.Clear()
	out.Vacated = true
	return out
}

// stepAxis returns the single-step direction (-1, 0 or +1) from a
// toward b on a toroidal axis of the given size, taking whichever of
// the direct or wrap-around path is shorter. Ties break toward the
// direct path.
func stepAxis(a, b, size int) int {
	if a == b {
		return 0
	}
	dir := 1
	if b < a {
		dir = -1
	}
	direct := b - a
	if direct < 0 {
		direct = -direct
	}
	if size-direct < direct {
		return -dir
	}
	return dir
}
