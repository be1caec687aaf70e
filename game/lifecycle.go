package game

import (
	"log/slog"

	"github.com/pthm-cable/lotka/components"
)

// seedPopulation places the initial organisms at uniformly random
// coordinates. A draw landing on an occupied site is resampled, so the
// grid ends up holding exactly the requested counts; Validate has
// already ensured they fit.
func (s *Simulation) seedPopulation() {
	preyTraits := components.PreyTraits{
		ReproductionRate: s.cfg.Prey.ReproductionRate,
		MovingFactor:     s.cfg.Prey.MovingFactor,
	}
	predatorTraits := components.PredatorTraits{
		HuntingFactor:    s.cfg.Predator.HuntingFactor,
		ReproductionRate: s.cfg.Predator.ReproductionRate,
		DeathRate:        s.cfg.Predator.DeathRate,
		DeathAfter:       s.cfg.Predator.DeathAfter,
		InitialHunger:    s.cfg.Predator.InitialHunger,
	}

	for placed := 0; placed < s.cfg.Prey.Initial; {
		site := s.randomSite()
		if !site.IsEmpty() {
			continue
		}
		site.SetPrey(preyTraits)
		placed++
	}

	for placed := 0; placed < s.cfg.Predator.Initial; {
		site := s.randomSite()
		if !site.IsEmpty() {
			continue
		}
		site.SetPredator(predatorTraits, s.cfg.Predator.InitialHunger)
		placed++
	}

	slog.Debug("population seeded",
		"prey", s.cfg.Prey.Initial,
		"predators", s.cfg.Predator.Initial,
		"capacity", s.grid.Len(),
	)
}

func (s *Simulation) randomSite() *components.Site {
	x := s.rng.Intn(s.grid.Width())
	y := s.rng.Intn(s.grid.Height())
	return s.grid.Site(s.grid.Index(x, y))
}
