package bfield

import (
	"github.com/qsun/fluxtrace/internal/flux"
)

// ShearedSlab is a plane slab with a linearly sheared field: lines at
// the slab midplane run straight along zeta, lines above and below
// drift in theta at a rate proportional to their distance from it.
type ShearedSlab struct {
	Offset    float64 // embedding radius of the slab's inner face
	Thickness float64
	Shear     float64
}

func NewShearedSlab() *ShearedSlab {
	return &ShearedSlab{
		Offset:    3.0,
		Thickness: 1.0,
		Shear:     1.0,
	}
}

func (sl *ShearedSlab) Field(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 2); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	return flux.State{0, sl.Shear * (st[0] - 0.5)}, nil
}

func (sl *ShearedSlab) FieldTangent(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 6); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	out := make(flux.State, 6)
	out[1] = sl.Shear * (st[0] - 0.5)
	out[3] = sl.Shear * st[2]
	out[5] = sl.Shear * st[4]
	return out, nil
}

func (sl *ShearedSlab) Coordinates(stz flux.State) (flux.State, error) {
	if err := checkDim(stz, 3); err != nil {
		return nil, err
	}
	if err := checkRadial(stz[0]); err != nil {
		return nil, err
	}

	return flux.State{sl.Offset + stz[0]*sl.Thickness, stz[1], stz[2]}, nil
}
