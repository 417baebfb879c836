package bfield

import (
	"errors"
	"math"
	"testing"

	"github.com/qsun/fluxtrace/internal/flux"
)

func TestTokamakAxisField(t *testing.T) {
	tk := NewTokamak()

	dst, err := tk.Field(0, flux.State{0, 0})
	if err != nil {
		t.Fatal(err)
	}

	if dst[0] != 0 {
		t.Errorf("expected no radial drift on axis, got %f", dst[0])
	}
	if math.Abs(dst[1]-1/tk.Q0) > 1e-12 {
		t.Errorf("expected dtheta/dzeta %f on axis, got %f", 1/tk.Q0, dst[1])
	}
}

func TestTokamakOutsideVolume(t *testing.T) {
	tk := NewTokamak()

	for _, s := range []float64{-0.1, 1.5} {
		if _, err := tk.Field(0, flux.State{s, 0}); !errors.Is(err, flux.ErrOutsideVolume) {
			t.Errorf("s=%f: expected ErrOutsideVolume, got %v", s, err)
		}
		if _, err := tk.Coordinates(flux.State{s, 0, 0}); !errors.Is(err, flux.ErrOutsideVolume) {
			t.Errorf("s=%f: expected ErrOutsideVolume from Coordinates, got %v", s, err)
		}
	}
}

func TestTokamakDimensionChecks(t *testing.T) {
	tk := NewTokamak()

	if _, err := tk.Field(0, flux.State{0.5}); !errors.Is(err, flux.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := tk.FieldTangent(0, flux.State{0.5, 0}); !errors.Is(err, flux.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := tk.Coordinates(flux.State{0.5, 0}); !errors.Is(err, flux.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

// The tangent system must agree with a finite-difference linearization
// of the field.
func TestTokamakTangentMatchesFiniteDifference(t *testing.T) {
	tk := NewTokamak()
	tk.Eps = 0.02

	s, theta, zeta := 0.6, 0.9, 0.4
	h := 1e-6

	tangent, err := tk.FieldTangent(zeta, flux.State{s, theta, 1, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}

	// Column 1: perturb s.
	fp, _ := tk.Field(zeta, flux.State{s + h, theta})
	fm, _ := tk.Field(zeta, flux.State{s - h, theta})
	for i := 0; i < 2; i++ {
		fd := (fp[i] - fm[i]) / (2 * h)
		if math.Abs(fd-tangent[2+i]) > 1e-5 {
			t.Errorf("d f%d/ds: finite difference %g, tangent %g", i, fd, tangent[2+i])
		}
	}

	// Column 2: perturb theta.
	fp, _ = tk.Field(zeta, flux.State{s, theta + h})
	fm, _ = tk.Field(zeta, flux.State{s, theta - h})
	for i := 0; i < 2; i++ {
		fd := (fp[i] - fm[i]) / (2 * h)
		if math.Abs(fd-tangent[4+i]) > 1e-5 {
			t.Errorf("d f%d/dtheta: finite difference %g, tangent %g", i, fd, tangent[4+i])
		}
	}
}

func TestTokamakCoordinates(t *testing.T) {
	tk := NewTokamak()

	out, err := tk.Coordinates(flux.State{0, 0, 1.3})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(out[0]-tk.MajorRadius) > 1e-12 || math.Abs(out[2]) > 1e-12 {
		t.Errorf("axis should map to (R0, 0), got (%f, %f)", out[0], out[2])
	}
	if out[1] != 1.3 {
		t.Errorf("zeta should pass through, got %f", out[1])
	}

	out, err = tk.Coordinates(flux.State{1, math.Pi / 2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(out[2]-tk.MinorRadius) > 1e-12 {
		t.Errorf("expected Z=%f at top of edge surface, got %f", tk.MinorRadius, out[2])
	}
}
