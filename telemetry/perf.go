package telemetry

import "time"

// Phase names for the simulation step.
const (
	PhaseSnapshot  = "snapshot"
	PhaseIndex     = "index"
	PhasePredators = "predators"
	PhasePrey      = "prey"
	PhaseReconcile = "reconcile"
)

// stepPhases lists the phases in execution order, which is also the
// CSV column order.
var stepPhases = []string{PhaseSnapshot, PhaseIndex, PhasePredators, PhasePrey, PhaseReconcile}

// perfSample holds timing data for a single step.
type perfSample struct {
	stepDuration time.Duration
	phases       map[string]time.Duration
}

// PerfCollector tracks step and phase timings over a rolling window.
// Methods are nil-safe; a nil collector records nothing.
type PerfCollector struct {
	windowSize  int
	samples     []perfSample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	stepStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 25
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]perfSample, windowSize),
	}
}

// StartStep begins timing a new step.
func (p *PerfCollector) StartStep() {
	if p == nil {
		return
	}
	p.stepStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(stepPhases))
	p.lastPhase = ""
}

// StartPhase begins timing a phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndStep finishes the current step and records the sample.
func (p *PerfCollector) EndStep() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = perfSample{
		stepDuration: now.Sub(p.stepStart),
		phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated timings over the current window.
type PerfStats struct {
	AvgStepDuration time.Duration
	MinStepDuration time.Duration
	MaxStepDuration time.Duration
	PhaseAvg        map[string]time.Duration
	StepsPerSecond  float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{PhaseAvg: make(map[string]time.Duration, len(stepPhases))}
	if p == nil || p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseTotals := make(map[string]time.Duration, len(stepPhases))
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.stepDuration
		if stats.MinStepDuration == 0 || s.stepDuration < stats.MinStepDuration {
			stats.MinStepDuration = s.stepDuration
		}
		if s.stepDuration > stats.MaxStepDuration {
			stats.MaxStepDuration = s.stepDuration
		}
		for name, d := range s.phases {
			phaseTotals[name] += d
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgStepDuration = total / n
	for name, d := range phaseTotals {
		stats.PhaseAvg[name] = d / n
	}
	if stats.AvgStepDuration > 0 {
		stats.StepsPerSecond = float64(time.Second) / float64(stats.AvgStepDuration)
	}
	return stats
}

// PerfStatsCSV is the flat CSV representation of a perf window.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgStepUs      float64 `csv:"avg_step_us"`
	MinStepUs      float64 `csv:"min_step_us"`
	MaxStepUs      float64 `csv:"max_step_us"`
	StepsPerSecond float64 `csv:"steps_per_sec"`
	SnapshotUs     float64 `csv:"snapshot_us"`
	IndexUs        float64 `csv:"index_us"`
	PredatorsUs    float64 `csv:"predators_us"`
	PreyUs         float64 `csv:"prey_us"`
	ReconcileUs    float64 `csv:"reconcile_us"`
}

// ToCSV flattens the stats into a CSV record.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	us := func(d time.Duration) float64 { return float64(d) / float64(time.Microsecond) }
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgStepUs:      us(s.AvgStepDuration),
		MinStepUs:      us(s.MinStepDuration),
		MaxStepUs:      us(s.MaxStepDuration),
		StepsPerSecond: s.StepsPerSecond,
		SnapshotUs:     us(s.PhaseAvg[PhaseSnapshot]),
		IndexUs:        us(s.PhaseAvg[PhaseIndex]),
		PredatorsUs:    us(s.PhaseAvg[PhasePredators]),
		PreyUs:         us(s.PhaseAvg[PhasePrey]),
		ReconcileUs:    us(s.PhaseAvg[PhaseReconcile]),
	}
}
