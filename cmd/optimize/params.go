// Package main provides CMA-ES optimization for traffic simulation parameters.
package main

import (
	"github.com/pthm-cable/traffic/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Destination choice
			{Name: "follow_distance", Path: "driver.follow_distance", Min: 5, Max: 120, Default: 20},
			{Name: "follow_speed", Path: "driver.follow_speed", Min: 10, Max: 160, Default: 80},
			{Name: "wander_speed", Path: "driver.wander_speed", Min: 10, Max: 160, Default: 65},
			// Car handling
			{Name: "turn_rate", Path: "kinematics.turn_rate", Min: 0.5, Max: 15, Default: 5},
			{Name: "max_acceleration", Path: "kinematics.max_acceleration", Min: 1.5, Max: 12, Default: 5},
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Driver.FollowDistance = clamped[0]
	cfg.Driver.FollowSpeed = clamped[1]
	cfg.Driver.WanderSpeed = clamped[2]
	cfg.Kinematics.TurnRate = clamped[3]
	// Keep the acceleration range non-empty
	cfg.Kinematics.MaxAcceleration = max(clamped[4], cfg.Kinematics.MinAcceleration+0.5)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Driver.FollowDistance,
		cfg.Driver.FollowSpeed,
		cfg.Driver.WanderSpeed,
		cfg.Kinematics.TurnRate,
		cfg.Kinematics.MaxAcceleration,
	}
}
