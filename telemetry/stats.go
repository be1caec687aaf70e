package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one step window.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	PreyBirths int `csv:"prey_births"`
	PredBirths int `csv:"pred_births"`
	PreyDeaths int `csv:"prey_deaths"`
	PredDeaths int `csv:"pred_deaths"`

	// Hunting
	Hunts    int     `csv:"hunts"`
	Kills    int     `csv:"kills"`
	KillRate float64 `csv:"kill_rate"`

	// Population distribution over the window's per-step samples
	PreyMean float64 `csv:"prey_mean"`
	PreyStd  float64 `csv:"prey_std"`
	PreyP10  float64 `csv:"prey_p10"`
	PreyP50  float64 `csv:"prey_p50"`
	PreyP90  float64 `csv:"prey_p90"`

	PredMean float64 `csv:"pred_mean"`
	PredStd  float64 `csv:"pred_std"`
	PredP10  float64 `csv:"pred_p10"`
	PredP50  float64 `csv:"pred_p50"`
	PredP90  float64 `csv:"pred_p90"`
}

// SeriesStats computes mean, standard deviation and the 10/50/90
// percentiles of a sample series. Empty series yield zeros.
func SeriesStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// Log writes the window summary through slog.
func (ws WindowStats) Log() {
	slog.Info("stats window",
		"window_end", ws.WindowEnd,
		"prey", ws.PreyCount,
		"pred", ws.PredCount,
		"prey_births", ws.PreyBirths,
		"pred_births", ws.PredBirths,
		"prey_deaths", ws.PreyDeaths,
		"pred_deaths", ws.PredDeaths,
		"hunts", ws.Hunts,
		"kills", ws.Kills,
		"kill_rate", ws.KillRate,
	)
}
