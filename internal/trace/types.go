package trace

import (
	"github.com/qsun/fluxtrace/internal/flux"
)

type Config struct {
	// Step is the zeta increment per integration step.
	Step float64
	// Turns is the number of toroidal periods to follow the line.
	Turns int
	// Adaptive enables error-controlled stepping when the integrator
	// supports it.
	Adaptive  bool
	Tolerance float64
	MinStep   float64
	MaxStep   float64
	// RecordPath keeps every intermediate state, not only the
	// section crossings.
	RecordPath    bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Step:          0.02,
		Turns:         200,
		Tolerance:     1e-8,
		MinStep:       1e-8,
		MaxStep:       0.5,
		ValidateState: true,
	}
}

// Result holds one traced field line. Crossings are the (s, theta)
// states captured exactly at each zeta = 2πk section plane; Path and
// Zetas are populated only when RecordPath is set.
type Result struct {
	Start      flux.State
	Crossings  []flux.State
	Path       []flux.State
	Zetas      []float64
	StepsTaken int
}
