package flux

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Oracle answers field and coordinate queries for one volume of an
// equilibrium. Implementations own the physical units and the field
// component evaluation; callers forward states unmodified.
type Oracle interface {
	// Field returns (B^s/B^zeta, B^theta/B^zeta) at the 2-element
	// state (s, theta) and toroidal angle zeta.
	Field(zeta float64, st State) (State, error)

	// FieldTangent extends Field to the 6-element state
	// (s, theta, ds1, dtheta1, ds2, dtheta2) of the variational system.
	FieldTangent(zeta float64, st State) (State, error)

	// Coordinates maps the 3-element (s, theta, zeta) state to a
	// geometry-dependent physical triple. For toroidal geometry the
	// first and third components are the lab-frame (R, Z) pair; for
	// slab and cylindrical geometry the first component is the
	// physical radius.
	Coordinates(stz State) (State, error)
}

// Equilibrium supplies the construction-time metadata for a Problem:
// the geometry flag and the two periodicity radii used for slab scaling.
type Equilibrium interface {
	GeometryFlag() int
	VolumeCount() int
	PoloidalRadius() float64
	ToroidalRadius() float64
}
