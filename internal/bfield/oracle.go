package bfield

import (
	"fmt"

	"github.com/qsun/fluxtrace/internal/equilibrium"
	"github.com/qsun/fluxtrace/internal/flux"
)

func checkDim(st flux.State, want int) error {
	if len(st) != want {
		return fmt.Errorf("%w: got %d, want %d", flux.ErrDimensionMismatch, len(st), want)
	}
	return nil
}

func checkRadial(s float64) error {
	if s < 0 || s > 1 {
		return fmt.Errorf("%w: s=%f", flux.ErrOutsideVolume, s)
	}
	return nil
}

// FromEquilibrium builds the analytic oracle matching the equilibrium's
// geometry, parameterized by its field block.
func FromEquilibrium(eq *equilibrium.Data) (flux.Oracle, error) {
	geom, err := flux.ParseGeometry(eq.Geometry)
	if err != nil {
		return nil, err
	}

	p := eq.Field
	switch geom {
	case flux.Slab:
		return &ShearedSlab{
			Offset:    p.MajorRadius,
			Thickness: p.MinorRadius,
			Shear:     p.Shear,
		}, nil
	case flux.Cylindrical:
		return &ScrewPinch{
			MajorRadius: p.MajorRadius,
			MinorRadius: p.MinorRadius,
			B0:          p.B0,
			Q0:          p.Q0,
			Q1:          p.Q1,
		}, nil
	case flux.Toroidal:
		return &Tokamak{
			MajorRadius: p.MajorRadius,
			MinorRadius: p.MinorRadius,
			B0:          p.B0,
			Q0:          p.Q0,
			Q1:          p.Q1,
			Eps:         p.Eps,
			M:           p.M,
			N:           p.N,
		}, nil
	}
	panic("bfield: unhandled geometry")
}
