package flux

import (
	"fmt"
	"math"
)

// Problem is the field-line ODE problem for one nested volume of an
// equilibrium. It fixes the geometry, the plot projection and the
// periodicity radii at construction and delegates all field and
// coordinate evaluation to its Oracle. Immutable after New.
type Problem struct {
	geometry Geometry
	volume   int
	rpol     float64
	rtor     float64
	proj     Projection
	oracle   Oracle
}

// Dimension of the ODE state: (s, theta), with zeta the independent
// variable.
const Dimension = 2

// New builds the field-line problem for one volume. The geometry flag is
// resolved exactly once here; an unrecognized flag aborts construction.
func New(eq Equilibrium, volume int, oracle Oracle) (*Problem, error) {
	geom, err := ParseGeometry(eq.GeometryFlag())
	if err != nil {
		return nil, err
	}
	if volume < 1 || volume > eq.VolumeCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadVolume, volume, eq.VolumeCount())
	}
	return &Problem{
		geometry: geom,
		volume:   volume,
		rpol:     eq.PoloidalRadius(),
		rtor:     eq.ToroidalRadius(),
		proj:     geom.projection(),
		oracle:   oracle,
	}, nil
}

func (p *Problem) Geometry() Geometry     { return p.geometry }
func (p *Problem) Volume() int            { return p.volume }
func (p *Problem) Dimension() int         { return Dimension }
func (p *Problem) Projection() Projection { return p.proj }

// RHS is the ODE right-hand side (ds/dzeta, dtheta/dzeta) at the
// 2-element state. A pure pass-through: the oracle owns the field
// evaluation, and its errors propagate unchanged to the integrator.
func (p *Problem) RHS(zeta float64, st State) (State, error) {
	return p.oracle.Field(zeta, st)
}

// RHSTangent is the variational right-hand side over the 6-element
// state (base plus two perturbation directions), used to linearize the
// flow for residue and stability analysis. Pass-through like RHS.
func (p *Problem) RHSTangent(zeta float64, st State) (State, error) {
	return p.oracle.FieldTangent(zeta, st)
}

// ConvertCoords maps a solver-internal (s, theta, zeta) triple to a
// physical triple under the problem's geometry.
func (p *Problem) ConvertCoords(stz State) (State, error) {
	xyz, err := p.oracle.Coordinates(stz)
	if err != nil {
		return nil, err
	}
	switch p.geometry {
	case Slab:
		return State{
			xyz[0],
			WrapAngle(stz[1]) * p.rpol,
			WrapAngle(stz[2]) * p.rtor,
		}, nil
	case Cylindrical:
		// zeta stays unwrapped here, unlike the slab branch.
		return State{
			xyz[0] * math.Cos(stz[1]),
			stz[2] * p.rtor,
			xyz[0] * math.Sin(stz[1]),
		}, nil
	case Toroidal:
		// The oracle already returns lab-frame (R, zeta, Z).
		return xyz, nil
	}
	// Unreachable post-construction.
	panic("flux: unhandled geometry in ConvertCoords")
}
