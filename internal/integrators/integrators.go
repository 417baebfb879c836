// Package integrators provides fixed-step and adaptive Runge-Kutta
// steppers for field-line systems. The right-hand side is any function
// with the generic first-order ODE signature (zeta, y) -> dy; oracle
// evaluation failures propagate out of Step unchanged.
package integrators

import (
	"fmt"

	"github.com/qsun/fluxtrace/internal/flux"
)

// Func is the ODE right-hand side evaluated by a stepper.
type Func func(zeta float64, x flux.State) (flux.State, error)

type Integrator interface {
	Step(f Func, x flux.State, zeta, dz float64) (flux.State, error)
}

// Adaptive steppers additionally control their own step size against a
// local error tolerance, returning the suggested next step.
type Adaptive interface {
	Integrator
	StepAdaptive(f Func, x flux.State, zeta, dz, tol float64) (flux.State, float64, error)
}

// New resolves a stepper by name.
func New(name string) (Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator %q (want euler, rk4 or rk45)", name)
}
