package analysis

import (
	"context"

	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/trace"
)

// RotationNumber estimates the rotational transform iota of a traced
// line as the mean theta advance per toroidal period, divided by 2π.
// Crossings carry the unwrapped theta, so no winding bookkeeping is
// needed here.
func RotationNumber(res *trace.Result) float64 {
	n := len(res.Crossings)
	if n < 2 {
		return 0
	}
	sweep := res.Crossings[n-1][1] - res.Crossings[0][1]
	return sweep / (flux.TwoPi * float64(n-1))
}

// IotaProfile traces lines seeded across (lo, hi) in s and returns
// their start radii and rotational transforms. Lines are traced through
// the supplied factory so each sample gets its own tracer.
func IotaProfile(ctx context.Context, factory func() *trace.Tracer, cfg trace.Config, n int, lo, hi float64) ([]float64, []float64, error) {
	starts := trace.RadialStarts(n, lo, hi)

	results, err := trace.NewEnsemble(factory, starts).Run(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	radii := make([]float64, n)
	iotas := make([]float64, n)
	for i, res := range results {
		radii[i] = starts[i][0]
		iotas[i] = RotationNumber(res)
	}
	return radii, iotas, nil
}
