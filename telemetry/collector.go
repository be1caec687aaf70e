// Package telemetry provides window statistics, phase timings and CSV
// output for simulation runs.
package telemetry

import "github.com/pthm-cable/lotka/components"

// Collector accumulates events within step windows and produces
// WindowStats. All methods are nil-safe so the engine can run without
// telemetry attached.
type Collector struct {
	windowSteps int
	windowStart int

	preyBirths int
	predBirths int
	preyDeaths int
	predDeaths int
	hunts      int
	kills      int

	// Per-step population samples within the current window.
	preySeries []float64
	predSeries []float64
}

// NewCollector creates a collector flushing every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: windowSteps,
		preySeries:  make([]float64, 0, windowSteps),
		predSeries:  make([]float64, 0, windowSteps),
	}
}

// AddBirths records n birth events for the given species.
func (c *Collector) AddBirths(kind components.Kind, n int) {
	if c == nil {
		return
	}
	if kind == components.KindPrey {
		c.preyBirths += n
	} else {
		c.predBirths += n
	}
}

// AddDeaths records n death events for the given species. Prey deaths
// are kills; predator deaths are starvation or natural death.
func (c *Collector) AddDeaths(kind components.Kind, n int) {
	if c == nil {
		return
	}
	if kind == components.KindPrey {
		c.preyDeaths += n
	} else {
		c.predDeaths += n
	}
}

// AddHunts records hunting attempts and how many of them killed.
func (c *Collector) AddHunts(attempted, killed int) {
	if c == nil {
		return
	}
	c.hunts += attempted
	c.kills += killed
}

// RecordStep samples the post-step population counts.
func (c *Collector) RecordStep(preyCount, predCount int) {
	if c == nil {
		return
	}
	c.preySeries = append(c.preySeries, float64(preyCount))
	c.predSeries = append(c.predSeries, float64(predCount))
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(step int) bool {
	if c == nil {
		return false
	}
	return step-c.windowStart >= c.windowSteps
}

// Flush produces the stats for the finished window and resets the
// counters for the next one.
func (c *Collector) Flush(step, preyCount, predCount int) WindowStats {
	ws := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   step,
		PreyCount:   preyCount,
		PredCount:   predCount,
		PreyBirths:  c.preyBirths,
		PredBirths:  c.predBirths,
		PreyDeaths:  c.preyDeaths,
		PredDeaths:  c.predDeaths,
		Hunts:       c.hunts,
		Kills:       c.kills,
	}
	if c.hunts > 0 {
		ws.KillRate = float64(c.kills) / float64(c.hunts)
	}
	ws.PreyMean, ws.PreyStd, ws.PreyP10, ws.PreyP50, ws.PreyP90 = SeriesStats(c.preySeries)
	ws.PredMean, ws.PredStd, ws.PredP10, ws.PredP50, ws.PredP90 = SeriesStats(c.predSeries)

	c.windowStart = step
	c.preyBirths, c.predBirths = 0, 0
	c.preyDeaths, c.predDeaths = 0, 0
	c.hunts, c.kills = 0, 0
	c.preySeries = c.preySeries[:0]
	c.predSeries = c.predSeries[:0]

	return ws
}
