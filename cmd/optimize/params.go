package main

import (
	"math"

	"github.com/pthm-cable/lotka/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable ecology rates.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "prey_reproduction_rate", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "prey_moving_factor", Min: 0.0, Max: 1.0, Default: 0.5},
			{Name: "pred_hunting_factor", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "pred_reproduction_rate", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "pred_death_rate", Min: 0.0, Max: 0.3, Default: 0.1},
			{Name: "pred_death_after", Min: 5, Max: 60, Default: 25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp limits raw values to their specified bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(spec.Max, math.Max(spec.Min, raw[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into a config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	v := pv.Clamp(raw)
	cfg.Prey.ReproductionRate = v[0]
	cfg.Prey.MovingFactor = v[1]
	cfg.Predator.HuntingFactor = v[2]
	cfg.Predator.ReproductionRate = v[3]
	cfg.Predator.DeathRate = v[4]
	cfg.Predator.DeathAfter = int(math.Round(v[5]))
}
