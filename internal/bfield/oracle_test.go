package bfield

import (
	"errors"
	"math"
	"testing"

	"github.com/qsun/fluxtrace/internal/equilibrium"
	"github.com/qsun/fluxtrace/internal/flux"
)

func TestScrewPinchNoRadialDrift(t *testing.T) {
	sp := NewScrewPinch()

	for _, s := range []float64{0, 0.3, 1} {
		dst, err := sp.Field(0.5, flux.State{s, 1.0})
		if err != nil {
			t.Fatalf("s=%f: %v", s, err)
		}
		if dst[0] != 0 {
			t.Errorf("s=%f: expected zero radial component, got %f", s, dst[0])
		}
	}
}

func TestScrewPinchTangentShear(t *testing.T) {
	sp := NewScrewPinch()

	s := 0.5
	h := 1e-6
	tangent, err := sp.FieldTangent(0, flux.State{s, 0, 1, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}

	fp, _ := sp.Field(0, flux.State{s + h, 0})
	fm, _ := sp.Field(0, flux.State{s - h, 0})
	fd := (fp[1] - fm[1]) / (2 * h)
	if math.Abs(fd-tangent[3]) > 1e-5 {
		t.Errorf("dtheta'/ds: finite difference %g, tangent %g", fd, tangent[3])
	}
}

func TestShearedSlabMidplaneIsStraight(t *testing.T) {
	sl := NewShearedSlab()

	dst, err := sl.Field(0, flux.State{0.5, 2.0})
	if err != nil {
		t.Fatal(err)
	}
	if dst[0] != 0 || dst[1] != 0 {
		t.Errorf("midplane line should be straight, got (%f, %f)", dst[0], dst[1])
	}

	dst, err = sl.Field(0, flux.State{1.0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dst[1]-sl.Shear*0.5) > 1e-12 {
		t.Errorf("expected drift %f at outer face, got %f", sl.Shear*0.5, dst[1])
	}
}

func TestFromEquilibriumDispatch(t *testing.T) {
	for _, flag := range []int{1, 2, 3} {
		eq := equilibrium.Default()
		eq.Geometry = flag

		oracle, err := FromEquilibrium(eq)
		if err != nil {
			t.Fatalf("flag %d: %v", flag, err)
		}

		switch flag {
		case 1:
			if _, ok := oracle.(*ShearedSlab); !ok {
				t.Errorf("flag 1: expected ShearedSlab, got %T", oracle)
			}
		case 2:
			if _, ok := oracle.(*ScrewPinch); !ok {
				t.Errorf("flag 2: expected ScrewPinch, got %T", oracle)
			}
		case 3:
			if _, ok := oracle.(*Tokamak); !ok {
				t.Errorf("flag 3: expected Tokamak, got %T", oracle)
			}
		}
	}
}

func TestFromEquilibriumRejectsUnknownGeometry(t *testing.T) {
	eq := equilibrium.Default()
	eq.Geometry = 9

	if _, err := FromEquilibrium(eq); !errors.Is(err, flux.ErrUnsupportedGeometry) {
		t.Errorf("expected ErrUnsupportedGeometry, got %v", err)
	}
}
