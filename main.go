package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/game"
	"github.com/pthm-cable/lotka/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxSteps := flag.Int("max-steps", 10000, "Stop after N steps (0 = run until extinction)")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	workers := flag.Int("workers", -1, "Worker count override (-1 = use config, 1 = sequential)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *workers >= 0 {
		cfg.Engine.Workers = *workers
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runID := uuid.NewString()

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteRunInfo(telemetry.RunInfo{ID: runID, Seed: rngSeed, StartedAt: time.Now()}); err != nil {
		slog.Error("failed to write run info", "error", err)
		os.Exit(1)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow)

	sim, err := game.New(cfg, game.Options{
		Seed:      rngSeed,
		Collector: collector,
		Perf:      perf,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer sim.Close()

	slog.Info("starting simulation",
		"run_id", runID,
		"seed", rngSeed,
		"grid", cfg.Grid,
		"prey", cfg.Prey.Initial,
		"predators", cfg.Predator.Initial,
		"max_steps", *maxSteps,
	)

	start := time.Now()
	for {
		sim.Step()

		if collector.ShouldFlush(sim.Steps()) {
			ws := collector.Flush(sim.Steps(), sim.PreyCount(), sim.PredatorCount())
			if *logStats {
				ws.Log()
			}
			if err := om.WriteTelemetry(ws); err != nil {
				slog.Error("failed to write telemetry", "error", err)
				os.Exit(1)
			}
			if err := om.WritePerf(perf.Stats(), sim.Steps()); err != nil {
				slog.Error("failed to write perf stats", "error", err)
				os.Exit(1)
			}
		}

		if sim.Extinct() {
			slog.Info("extinction",
				"step", sim.Steps(),
				"prey", sim.PreyCount(),
				"pred", sim.PredatorCount(),
			)
			break
		}
		if *maxSteps > 0 && sim.Steps() >= *maxSteps {
			slog.Info("max steps reached", "step", sim.Steps())
			break
		}
	}

	elapsed := time.Since(start)
	slog.Info("simulation finished",
		"run_id", runID,
		"steps", humanize.Comma(int64(sim.Steps())),
		"prey", humanize.Comma(int64(sim.PreyCount())),
		"pred", humanize.Comma(int64(sim.PredatorCount())),
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
}
