package integrators

import "github.com/qsun/fluxtrace/internal/flux"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f Func, x flux.State, zeta, dz float64) (flux.State, error) {
	dx, err := f(zeta, x)
	if err != nil {
		return nil, err
	}

	result := make(flux.State, len(x))
	for i := range x {
		result[i] = x[i] + dz*dx[i]
	}
	return result, nil
}
