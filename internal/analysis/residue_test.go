package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/qsun/fluxtrace/internal/bfield"
	"github.com/qsun/fluxtrace/internal/equilibrium"
	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/integrators"
	"github.com/qsun/fluxtrace/internal/trace"
)

func perturbedProblem(t *testing.T, eps float64) *flux.Problem {
	t.Helper()

	eq := equilibrium.Default()
	eq.Field.Eps = eps

	oracle, err := bfield.FromEquilibrium(eq)
	if err != nil {
		t.Fatal(err)
	}
	prob, err := flux.New(eq, 1, oracle)
	if err != nil {
		t.Fatal(err)
	}
	return prob
}

func TestResidueIntegrableIsZero(t *testing.T) {
	prob := perturbedProblem(t, 0)

	cfg := trace.DefaultConfig()
	cfg.Turns = 3
	cfg.Step = 0.01

	res, err := Residue(context.Background(), prob, integrators.NewRK4(), flux.State{0.5, 0}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Integrable shear gives tr M = 2 exactly, so the residue vanishes.
	if math.Abs(res) > 1e-8 {
		t.Errorf("expected zero residue, got %g", res)
	}
}

func TestTangentMapPreservesArea(t *testing.T) {
	prob := perturbedProblem(t, 0.01)

	cfg := trace.DefaultConfig()
	cfg.Turns = 2
	cfg.Step = 0.005

	m, err := TangentMap(context.Background(), prob, integrators.NewRK4(), flux.State{0.4, 0.7}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det-1) > 1e-6 {
		t.Errorf("tangent map determinant drifted from 1: %g", det)
	}
}

// The q = 2 surface of the default profile carries a 2/1 island chain
// once perturbed. Its O-point (phase 0) must be elliptic and the
// X-point (phase π) hyperbolic; the residue signs distinguish them.
func TestResidueIslandFixedPoints(t *testing.T) {
	prob := perturbedProblem(t, 0.01)

	// q(r) = Q0 + Q1 r² = 2 at the resonant radius.
	sRes := math.Sqrt((2 - equilibrium.DefaultQ0) / equilibrium.DefaultQ1)

	cfg := trace.DefaultConfig()
	cfg.Turns = 2 // period of the 2/1 orbit
	cfg.Step = 0.005

	oPoint, err := Residue(context.Background(), prob, integrators.NewRK4(), flux.State{sRes, 0}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	xPoint, err := Residue(context.Background(), prob, integrators.NewRK4(), flux.State{sRes, math.Pi / 2}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if oPoint <= 0 || oPoint >= 1 {
		t.Errorf("O-point residue should be elliptic in (0, 1), got %g", oPoint)
	}
	if xPoint >= 0 {
		t.Errorf("X-point residue should be negative, got %g", xPoint)
	}
}

func TestResiduePropagatesOracleError(t *testing.T) {
	prob := perturbedProblem(t, 0)

	cfg := trace.DefaultConfig()
	cfg.Turns = 1

	if _, err := Residue(context.Background(), prob, integrators.NewRK4(), flux.State{1.5, 0}, cfg); err == nil {
		t.Error("expected out-of-volume error")
	}
}
