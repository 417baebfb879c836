package integrators

import "github.com/qsun/fluxtrace/internal/flux"

type RK4 struct {
	k1, k2, k3, k4 flux.State
	scratch        flux.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(flux.State, n)
		r.k2 = make(flux.State, n)
		r.k3 = make(flux.State, n)
		r.k4 = make(flux.State, n)
		r.scratch = make(flux.State, n)
	}
}

func (r *RK4) Step(f Func, x flux.State, zeta, dz float64) (flux.State, error) {
	n := len(x)
	r.ensureScratch(n)

	k1, err := f(zeta, x)
	if err != nil {
		return nil, err
	}
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dz*0.5*r.k1[i]
	}
	k2, err := f(zeta+dz*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dz*0.5*r.k2[i]
	}
	k3, err := f(zeta+dz*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dz*r.k3[i]
	}
	k4, err := f(zeta+dz, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k4, k4)

	result := make(flux.State, n)
	dz6 := dz / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dz6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result, nil
}
