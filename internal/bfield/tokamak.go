package bfield

import (
	"math"

	"github.com/qsun/fluxtrace/internal/flux"
)

// Tokamak is a large-aspect-ratio tokamak field with circular flux
// surfaces, safety factor q(r) = Q0 + Q1·r² and an optional resonant
// perturbation Eps·cos(M·theta - N·zeta). With Eps = 0 the field is
// integrable and every line stays on its starting surface; a small Eps
// opens an island chain at the q = M/N surface.
//
// The radial coordinate s in [0, 1] labels surfaces, with minor radius
// r = s·MinorRadius.
type Tokamak struct {
	MajorRadius float64
	MinorRadius float64
	B0          float64
	Q0          float64
	Q1          float64
	Eps         float64
	M           int
	N           int
}

func NewTokamak() *Tokamak {
	return &Tokamak{
		MajorRadius: 3.0,
		MinorRadius: 1.0,
		B0:          1.0,
		Q0:          1.1,
		Q1:          1.5,
		M:           2,
		N:           1,
	}
}

func (tk *Tokamak) q(r float64) float64 {
	return tk.Q0 + tk.Q1*r*r
}

// iota and its derivative with respect to s.
func (tk *Tokamak) iota(s float64) (float64, float64) {
	r := s * tk.MinorRadius
	q := tk.q(r)
	di := -2 * tk.Q1 * r * tk.MinorRadius / (q * q)
	return 1 / q, di
}

func (tk *Tokamak) Field(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 2); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	iota, _ := tk.iota(st[0])
	m := float64(tk.M)
	phase := m*st[1] - float64(tk.N)*zeta

	return flux.State{
		tk.Eps * m * math.Sin(phase),
		iota,
	}, nil
}

func (tk *Tokamak) FieldTangent(zeta float64, st flux.State) (flux.State, error) {
	if err := checkDim(st, 6); err != nil {
		return nil, err
	}
	if err := checkRadial(st[0]); err != nil {
		return nil, err
	}

	iota, diota := tk.iota(st[0])
	m := float64(tk.M)
	phase := m*st[1] - float64(tk.N)*zeta

	// Jacobian of (ds/dzeta, dtheta/dzeta) in (s, theta).
	j01 := tk.Eps * m * m * math.Cos(phase)
	j10 := diota

	out := make(flux.State, 6)
	out[0] = tk.Eps * m * math.Sin(phase)
	out[1] = iota
	out[2] = j01 * st[3]
	out[3] = j10 * st[2]
	out[4] = j01 * st[5]
	out[5] = j10 * st[4]
	return out, nil
}

func (tk *Tokamak) Coordinates(stz flux.State) (flux.State, error) {
	if err := checkDim(stz, 3); err != nil {
		return nil, err
	}
	if err := checkRadial(stz[0]); err != nil {
		return nil, err
	}

	r := stz[0] * tk.MinorRadius
	return flux.State{
		tk.MajorRadius + r*math.Cos(stz[1]),
		stz[2],
		r * math.Sin(stz[1]),
	}, nil
}
