package telemetry

import (
	"testing"

	"github.com/pthm-cable/lotka/components"
)

func TestCollectorWindowFlush(t *testing.T) {
	c := NewCollector(3)

	c.AddBirths(components.KindPrey, 4)
	c.AddBirths(components.KindPredator, 2)
	c.AddDeaths(components.KindPrey, 3)
	c.AddDeaths(components.KindPredator, 1)
	c.AddHunts(10, 3)
	c.RecordStep(100, 50)
	c.RecordStep(101, 49)
	c.RecordStep(102, 48)

	if c.ShouldFlush(2) {
		t.Error("ShouldFlush fired before the window completed")
	}
	if !c.ShouldFlush(3) {
		t.Fatal("ShouldFlush did not fire at the window boundary")
	}

	ws := c.Flush(3, 102, 48)

	if ws.WindowStart != 0 || ws.WindowEnd != 3 {
		t.Errorf("window bounds = [%d, %d], want [0, 3]", ws.WindowStart, ws.WindowEnd)
	}
	if ws.PreyBirths != 4 || ws.PredBirths != 2 {
		t.Errorf("births = (%d, %d), want (4, 2)", ws.PreyBirths, ws.PredBirths)
	}
	if ws.PreyDeaths != 3 || ws.PredDeaths != 1 {
		t.Errorf("deaths = (%d, %d), want (3, 1)", ws.PreyDeaths, ws.PredDeaths)
	}
	if ws.Hunts != 10 || ws.Kills != 3 {
		t.Errorf("hunting = (%d, %d), want (10, 3)", ws.Hunts, ws.Kills)
	}
	if ws.KillRate != 0.3 {
		t.Errorf("kill rate = %v, want 0.3", ws.KillRate)
	}
	if ws.PreyMean != 101 {
		t.Errorf("prey mean = %v, want 101", ws.PreyMean)
	}
	if ws.PredP50 != 49 {
		t.Errorf("pred p50 = %v, want 49", ws.PredP50)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	c := NewCollector(2)
	c.AddHunts(5, 5)
	c.RecordStep(10, 10)
	c.RecordStep(9, 9)
	c.Flush(2, 9, 9)

	c.RecordStep(8, 8)
	c.RecordStep(7, 7)
	ws := c.Flush(4, 8, 8)

	if ws.WindowStart != 2 || ws.WindowEnd != 4 {
		t.Errorf("window bounds = [%d, %d], want [2, 4]", ws.WindowStart, ws.WindowEnd)
	}
	if ws.Hunts != 0 || ws.Kills != 0 {
		t.Errorf("counters leaked into next window: %+v", ws)
	}
	if ws.PreyMean != 7.5 {
		t.Errorf("prey mean = %v, want 7.5", ws.PreyMean)
	}
}

func TestCollectorNilSafe(t *testing.T) {
	var c *Collector
	c.AddBirths(components.KindPrey, 1)
	c.AddDeaths(components.KindPredator, 1)
	c.AddHunts(1, 1)
	c.RecordStep(1, 1)
	if c.ShouldFlush(100) {
		t.Error("nil collector wants to flush")
	}
}
