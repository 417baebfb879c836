package bfield

import (
	"github.com/qsun/fluxtrace/internal/flux"
)

// ScrewPinch is a straight periodic cylinder with axial field B0 and
// safety factor q(r) = Q0 + Q1·r². Field lines wind at fixed radius,
// so ds/dzeta vanishes identically.
type ScrewPinch struct {
	MajorRadius float64 // periodic length / 2π
	MinorRadius float64
	B0          float64
	Q0          float64
	Q1          float64
}

func NewScrewPinch() *ScrewPinch {
	return &ScrewPinch{
		MajorRadius: 3.0,
		MinorRadius: 1.0,
		B0:          1.0,
		Q0:          1.1,
		Q1:          1.5,
	}
}

func (sp *ScrewPinch) iota(s float64) (float64, float64) {
	r := s * sp.MinorRadius
	q := sp.Q0 + sp.Q1*r*r
	di := -2 * sp.Q1 * r * sp.MinorRadius / (q * q)
	return 1 / q, di
}

func (sp *ScrewPinch) Field(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 2); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	iota, _ := sp.iota(st[0])
	return flux.State{0, iota}, nil
}

func (sp *ScrewPinch) FieldTangent(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 6); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	iota, diota := sp.iota(st[0])

	out := make(flux.State, 6)
	out[1] = iota
	out[3] = diota * st[2]
	out[5] = diota * st[4]
	return out, nil
}

// Coordinates returns the cylindrical radius in the first slot; the
// planar embedding happens in the coordinate converter.
func (sp *ScrewPinch) Coordinates(stz flux.State) (flux.State, error) {
	if err := checkDim(stz, 3); err != nil {
		return nil, err
	}
	if err := checkRadial(stz[0]); err != nil {
		return nil, err
	}

	return flux.State{stz[0] * sp.MinorRadius, stz[1], stz[2]}, nil
}
