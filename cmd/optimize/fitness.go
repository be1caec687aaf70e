package main

import (
	"sync"

	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/game"
)

// balanceSampleInterval is how often (in steps) a run samples the
// prey/predator balance for the quality score.
const balanceSampleInterval = 25

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxSteps:   maxSteps,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	survival int
	quality  float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative coexistence length, weighted by how balanced the
// two populations stayed: longer balanced coexistence = lower fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var fitness, quality float64
	for _, r := range results {
		fitness += -float64(r.survival) * (1.0 + 0.2*r.quality)
		quality += r.quality
	}
	fitness /= float64(len(results))
	quality /= float64(len(results))

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness
}

// runSimulation runs one seeded simulation until extinction or the
// step cap, tracking the population balance along the way.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) seedResult {
	// Each goroutine runs its own simulation; keep them sequential
	// internally so the seeds stay apples-to-apples.
	runCfg := cfg.Clone()
	runCfg.Engine.Workers = 1

	sim, err := game.New(runCfg, game.Options{Seed: seed})
	if err != nil {
		return seedResult{}
	}
	defer sim.Close()

	var balanceSum float64
	var balanceSamples int

	for sim.Steps() < fe.maxSteps {
		sim.Step()

		if sim.Extinct() {
			break
		}
		if sim.Steps()%balanceSampleInterval == 0 {
			prey, pred := float64(sim.PreyCount()), float64(sim.PredatorCount())
			lo, hi := prey, pred
			if lo > hi {
				lo, hi = hi, lo
			}
			balanceSum += lo / hi
			balanceSamples++
		}
	}

	quality := 0.0
	if balanceSamples > 0 {
		quality = balanceSum / float64(balanceSamples)
	}
	return seedResult{survival: sim.Steps(), quality: quality}
}
