// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Prey      PreyConfig      `yaml:"prey"`
	Predator  PredatorConfig  `yaml:"predator"`
	Engine    EngineConfig    `yaml:"engine"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GridConfig holds world dimensions. The grid is toroidal: coordinate
// arithmetic wraps at both edges.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PreyConfig holds prey rule parameters.
type PreyConfig struct {
	ReproductionRate float64 `yaml:"reproduction_rate"` // per-step spawn probability when 1-3 prey neighbors
	MovingFactor     float64 `yaml:"moving_factor"`     // per-step move probability
	Initial          int     `yaml:"initial"`           // seeded population
}

// PredatorConfig holds predator rule parameters.
type PredatorConfig struct {
	HuntingFactor    float64 `yaml:"hunting_factor"`    // kill probability against the first prey neighbor
	ReproductionRate float64 `yaml:"reproduction_rate"` // per-step spawn probability when 1-3 predator neighbors
	DeathRate        float64 `yaml:"death_rate"`        // natural death probability per step
	DeathAfter       int     `yaml:"death_after"`       // steps without a kill before starvation
	InitialHunger    int     `yaml:"initial_hunger"`    // hunger assigned to seeded and newborn predators
	Initial          int     `yaml:"initial"`           // seeded population
}

// EngineConfig holds update engine tuning.
type EngineConfig struct {
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // min organisms per phase to go parallel
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // steps per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the simulation rejects.
// Invalid configurations fail here, at construction time, never mid-run.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	probs := []struct {
		name  string
		value float64
	}{
		{"prey.reproduction_rate", c.Prey.ReproductionRate},
		{"prey.moving_factor", c.Prey.MovingFactor},
		{"predator.hunting_factor", c.Predator.HuntingFactor},
		{"predator.reproduction_rate", c.Predator.ReproductionRate},
		{"predator.death_rate", c.Predator.DeathRate},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("config: %s must be in [0,1], got %v", p.name, p.value)
		}
	}
	if c.Predator.DeathAfter <= 0 {
		return fmt.Errorf("config: predator.death_after must be positive, got %d", c.Predator.DeathAfter)
	}
	if c.Predator.InitialHunger < 0 {
		return fmt.Errorf("config: predator.initial_hunger must be non-negative, got %d", c.Predator.InitialHunger)
	}
	if c.Prey.Initial < 0 || c.Predator.Initial < 0 {
		return fmt.Errorf("config: initial populations must be non-negative, got prey=%d predators=%d",
			c.Prey.Initial, c.Predator.Initial)
	}
	capacity := c.Grid.Width * c.Grid.Height
	if c.Prey.Initial+c.Predator.Initial > capacity {
		return fmt.Errorf("config: initial population %d exceeds grid capacity %d",
			c.Prey.Initial+c.Predator.Initial, capacity)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("config: engine.workers must be non-negative, got %d", c.Engine.Workers)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("config: telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
