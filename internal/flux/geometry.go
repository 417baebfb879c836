package flux

import (
	"fmt"
	"math"
)

// Geometry identifies the topology of the equilibrium. The numeric
// values match the geometry flag found in equilibrium files.
type Geometry int

const (
	Slab Geometry = iota + 1
	Cylindrical
	Toroidal
)

func (g Geometry) String() string {
	switch g {
	case Slab:
		return "slab"
	case Cylindrical:
		return "cylindrical"
	case Toroidal:
		return "toroidal"
	}
	return fmt.Sprintf("geometry(%d)", int(g))
}

// ParseGeometry resolves an equilibrium geometry flag. Anything outside
// {1, 2, 3} is rejected; no default geometry is assumed.
func ParseGeometry(flag int) (Geometry, error) {
	switch flag {
	case 1:
		return Slab, nil
	case 2:
		return Cylindrical, nil
	case 3:
		return Toroidal, nil
	}
	return 0, fmt.Errorf("%w: flag %d", ErrUnsupportedGeometry, flag)
}

// PlotKind selects the 2D projection used when plotting sections.
type PlotKind string

const (
	PlotYX PlotKind = "yx"
	PlotRZ PlotKind = "RZ"
)

// Projection carries the plot metadata fixed by the geometry.
type Projection struct {
	Kind   PlotKind
	XLabel string
	YLabel string
}

func (g Geometry) projection() Projection {
	switch g {
	case Slab:
		return Projection{Kind: PlotYX, XLabel: "θ", YLabel: "R"}
	case Cylindrical:
		return Projection{Kind: PlotRZ, XLabel: "X(m)", YLabel: "Y(m)"}
	case Toroidal:
		return Projection{Kind: PlotRZ, XLabel: "R(m)", YLabel: "Z(m)"}
	}
	panic("flux: projection for unknown geometry")
}

const TwoPi = 2 * math.Pi

// WrapAngle maps any real angle into [0, 2π). The result is always
// non-negative, so -0.5 and 2π-0.5 wrap to the same canonical value.
func WrapAngle(x float64) float64 {
	w := math.Mod(x, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	return w
}
