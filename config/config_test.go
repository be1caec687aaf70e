package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Grid.Width != 100 || cfg.Grid.Height != 100 {
		t.Errorf("default grid = %dx%d, want 100x100", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Prey.Initial != 1500 || cfg.Predator.Initial != 1000 {
		t.Errorf("default populations = %d/%d, want 1500/1000", cfg.Prey.Initial, cfg.Predator.Initial)
	}
	if cfg.Predator.DeathAfter != 25 {
		t.Errorf("default death_after = %d, want 25", cfg.Predator.DeathAfter)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults are valid", func(c *Config) {}, true},
		{"zero width", func(c *Config) { c.Grid.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Grid.Height = -1 }, false},
		{"moving factor above one", func(c *Config) { c.Prey.MovingFactor = 1.5 }, false},
		{"negative hunting factor", func(c *Config) { c.Predator.HuntingFactor = -0.2 }, false},
		{"zero death_after", func(c *Config) { c.Predator.DeathAfter = 0 }, false},
		{"negative initial hunger", func(c *Config) { c.Predator.InitialHunger = -1 }, false},
		{"over capacity", func(c *Config) {
			c.Grid.Width, c.Grid.Height = 10, 10
			c.Prey.Initial, c.Predator.Initial = 60, 50
		}, false},
		{"exactly at capacity", func(c *Config) {
			c.Grid.Width, c.Grid.Height = 10, 10
			c.Prey.Initial, c.Predator.Initial = 60, 40
		}, true},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }, false},
		{"zero stats window", func(c *Config) { c.Telemetry.StatsWindow = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cp := cfg.Clone()
	cp.Prey.ReproductionRate = 0.9
	if cfg.Prey.ReproductionRate == 0.9 {
		t.Error("mutating the clone changed the original")
	}
}
