package analysis

import (
	"context"

	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/integrators"
	"github.com/qsun/fluxtrace/internal/trace"
)

// TangentMap integrates the variational system from x0 over the given
// number of toroidal periods with identity initial perturbations and
// returns the resulting 2x2 tangent map as (m11, m12, m21, m22).
func TangentMap(ctx context.Context, prob *flux.Problem, integ integrators.Integrator, x0 flux.State, cfg trace.Config) ([4]float64, error) {
	var m [4]float64

	st := flux.State{x0[0], x0[1], 1, 0, 0, 1}
	zeta := 0.0
	end := flux.TwoPi * float64(cfg.Turns)

	for zeta < end {
		select {
		case <-ctx.Done():
			return m, ctx.Err()
		default:
		}

		step := cfg.Step
		if zeta+step > end {
			step = end - zeta
		}

		next, err := integ.Step(prob.RHSTangent, st, zeta, step)
		if err != nil {
			return m, &flux.EvalError{Zeta: zeta, Wrapped: err}
		}
		st = next
		zeta += step
	}

	// Columns are the two propagated perturbation directions.
	m[0], m[1] = st[2], st[4]
	m[2], m[3] = st[3], st[5]
	return m, nil
}

// Residue computes Greene's residue R = (2 - tr M) / 4 of the tangent
// map over cfg.Turns periods. For a periodic line, R in (0, 1) marks an
// elliptic (stable) orbit and R outside [0, 1] a hyperbolic one.
func Residue(ctx context.Context, prob *flux.Problem, integ integrators.Integrator, x0 flux.State, cfg trace.Config) (float64, error) {
	m, err := TangentMap(ctx, prob, integ, x0, cfg)
	if err != nil {
		return 0, err
	}
	return (2 - (m[0] + m[3])) / 4, nil
}
