package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/qsun/fluxtrace/internal/flux"
)

// Harmonic oscillator: y'' = -y, as a first-order system.
func oscillator(zeta float64, x flux.State) (flux.State, error) {
	return flux.State{x[1], -x[0]}, nil
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := flux.State{1.0, 0.0}
	dz := 0.01
	steps := 100

	var err error
	for i := 0; i < steps; i++ {
		x, err = integ.Step(oscillator, x, float64(i)*dz, dz)
		if err != nil {
			t.Fatal(err)
		}
	}

	expectedX := math.Cos(float64(steps) * dz)
	expectedV := -math.Sin(float64(steps) * dz)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	integ := NewEuler()

	// y' = y has solution e^zeta.
	grow := func(zeta float64, x flux.State) (flux.State, error) {
		return flux.State{x[0]}, nil
	}

	x := flux.State{1.0}
	dz := 0.001
	var err error
	for i := 0; i < 1000; i++ {
		x, err = integ.Step(grow, x, float64(i)*dz, dz)
		if err != nil {
			t.Fatal(err)
		}
	}

	if math.Abs(x[0]-math.E) > 2e-3 {
		t.Errorf("expected ~e, got %.6f", x[0])
	}
}

func TestStepPropagatesEvaluationError(t *testing.T) {
	boom := errors.New("evaluation failed")
	failing := func(zeta float64, x flux.State) (flux.State, error) {
		return nil, boom
	}

	for _, integ := range []Integrator{NewEuler(), NewRK4(), NewRK45()} {
		if _, err := integ.Step(failing, flux.State{1, 0}, 0, 0.1); !errors.Is(err, boom) {
			t.Errorf("%T: expected wrapped evaluation error, got %v", integ, err)
		}
	}
}

func TestNewByName(t *testing.T) {
	mustNew := func(name string) Integrator {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		return integ
	}

	if _, ok := mustNew("euler").(*Euler); !ok {
		t.Error("expected Euler for \"euler\"")
	}
	if _, ok := mustNew("rk4").(*RK4); !ok {
		t.Error("expected RK4 for \"rk4\"")
	}
	if _, ok := mustNew("rk45").(*RK45); !ok {
		t.Error("expected RK45 for \"rk45\"")
	}
}

func TestNewRejectsUnknownName(t *testing.T) {
	if _, err := New("rk5"); err == nil {
		t.Error("expected error for unknown integrator name")
	}
}
