// Package trace drives the field-line integration loop: it marches the
// ODE problem in zeta, captures Poincaré section crossings at every
// toroidal period and decides how to react to oracle failures.
package trace

import (
	"context"
	"errors"
	"fmt"

	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/integrators"
)

type Tracer struct {
	prob  *flux.Problem
	integ integrators.Integrator
}

func New(prob *flux.Problem, integ integrators.Integrator) *Tracer {
	return &Tracer{prob: prob, integ: integ}
}

func (tr *Tracer) Problem() *flux.Problem { return tr.prob }

// Run follows one field line from the 2-element start state for
// cfg.Turns toroidal periods, stepping exactly onto each section plane.
func (tr *Tracer) Run(ctx context.Context, x0 flux.State, cfg Config) (*Result, error) {
	if err := tr.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != flux.Dimension {
		return nil, fmt.Errorf("%w: start state has %d elements", flux.ErrDimensionMismatch, len(x0))
	}

	result := &Result{
		Start:     x0.Clone(),
		Crossings: make([]flux.State, 0, cfg.Turns+1),
	}
	result.Crossings = append(result.Crossings, x0.Clone())

	x := x0.Clone()
	zeta := 0.0
	dz := cfg.Step

	if cfg.RecordPath {
		result.Path = append(result.Path, x.Clone())
		result.Zetas = append(result.Zetas, zeta)
	}

	for turn := 1; turn <= cfg.Turns; turn++ {
		plane := flux.TwoPi * float64(turn)

		for zeta < plane {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}

			step := dz
			if zeta+step > plane {
				step = plane - zeta
			}

			var next flux.State
			var err error
			taken := step
			if cfg.Adaptive {
				next, taken, dz, err = tr.adaptiveStep(x, zeta, step, cfg)
			} else {
				next, err = tr.integ.Step(tr.prob.RHS, x, zeta, step)
			}
			if err != nil {
				return result, &flux.EvalError{Zeta: zeta, Wrapped: err}
			}

			if cfg.ValidateState && !next.IsValid() {
				return result, &flux.EvalError{Zeta: zeta, Wrapped: flux.ErrOutsideVolume}
			}

			x = next
			zeta += taken
			result.StepsTaken++

			if cfg.RecordPath {
				result.Path = append(result.Path, x.Clone())
				result.Zetas = append(result.Zetas, zeta)
			}
		}

		result.Crossings = append(result.Crossings, x.Clone())
	}

	return result, nil
}

// adaptiveStep takes one error-controlled step, shrinking on oracle
// out-of-volume reports until MinStep. It returns the step size the
// state actually advanced by (smaller than dz after retries) and the
// suggested size for the next step, clamped to [MinStep, MaxStep].
func (tr *Tracer) adaptiveStep(x flux.State, zeta, dz float64, cfg Config) (flux.State, float64, float64, error) {
	adaptive, ok := tr.integ.(integrators.Adaptive)
	if !ok {
		next, err := tr.integ.Step(tr.prob.RHS, x, zeta, dz)
		return next, dz, dz, err
	}

	for {
		next, dzNew, err := adaptive.StepAdaptive(tr.prob.RHS, x, zeta, dz, cfg.Tolerance)
		if err == nil {
			if dzNew > cfg.MaxStep {
				dzNew = cfg.MaxStep
			}
			if dzNew < cfg.MinStep {
				dzNew = cfg.MinStep
			}
			return next, dz, dzNew, nil
		}
		if !errors.Is(err, flux.ErrOutsideVolume) {
			return nil, 0, dz, err
		}
		dz /= 2
		if dz < cfg.MinStep {
			return nil, 0, dz, fmt.Errorf("%w: %w", flux.ErrStepTooSmall, err)
		}
	}
}

func (tr *Tracer) validateConfig(cfg Config) error {
	if cfg.Step <= 0 {
		return fmt.Errorf("step must be positive, got %f", cfg.Step)
	}
	if cfg.Turns <= 0 {
		return fmt.Errorf("turns must be positive, got %d", cfg.Turns)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// Convert maps every crossing of a result to physical coordinates under
// the tracer's problem.
func (tr *Tracer) Convert(res *Result) ([]flux.State, error) {
	points := make([]flux.State, 0, len(res.Crossings))
	for i, st := range res.Crossings {
		zeta := flux.TwoPi * float64(i)
		p, err := tr.prob.ConvertCoords(flux.State{st[0], st[1], zeta})
		if err != nil {
			return points, &flux.EvalError{Zeta: zeta, Wrapped: err}
		}
		points = append(points, p)
	}
	return points, nil
}
