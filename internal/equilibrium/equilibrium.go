// Package equilibrium loads the equilibrium metadata that field-line
// problems are constructed from: the geometry flag, the nested volume
// count, the periodicity radii and the analytic field parameters.
package equilibrium

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMajorRadius = 3.0
	DefaultMinorRadius = 1.0
	DefaultAxisField   = 1.0
	DefaultQ0          = 1.1
	DefaultQ1          = 1.5
)

// Data is one equilibrium description. Geometry follows the usual flag
// convention: 1 slab, 2 cylindrical, 3 toroidal.
type Data struct {
	Name     string  `yaml:"name"`
	Geometry int     `yaml:"geometry"`
	Volumes  int     `yaml:"volumes"`
	Rpol     float64 `yaml:"rpol"`
	Rtor     float64 `yaml:"rtor"`

	// Analytic field parameters consumed by the bfield oracles.
	Field FieldParams `yaml:"field"`
}

// FieldParams parameterizes the built-in analytic fields: axis field
// strength and a quadratic safety-factor profile q(r) = q0 + q1·r².
type FieldParams struct {
	MajorRadius float64 `yaml:"major_radius"`
	MinorRadius float64 `yaml:"minor_radius"`
	B0          float64 `yaml:"b0"`
	Q0          float64 `yaml:"q0"`
	Q1          float64 `yaml:"q1"`
	Shear       float64 `yaml:"shear"`

	// Resonant perturbation eps·cos(m·theta - n·zeta); eps = 0 leaves
	// the field integrable.
	Eps float64 `yaml:"eps"`
	M   int     `yaml:"m"`
	N   int     `yaml:"n"`
}

func Default() *Data {
	return &Data{
		Name:     "analytic-tokamak",
		Geometry: 3,
		Volumes:  1,
		Rpol:     1.0,
		Rtor:     DefaultMajorRadius,
		Field: FieldParams{
			MajorRadius: DefaultMajorRadius,
			MinorRadius: DefaultMinorRadius,
			B0:          DefaultAxisField,
			Q0:          DefaultQ0,
			Q1:          DefaultQ1,
			Shear:       1.0,
			M:           2,
			N:           1,
		},
	}
}

func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	eq := Default()
	if err := yaml.Unmarshal(raw, eq); err != nil {
		return nil, fmt.Errorf("equilibrium %s: %w", path, err)
	}
	if err := eq.Validate(); err != nil {
		return nil, fmt.Errorf("equilibrium %s: %w", path, err)
	}
	return eq, nil
}

func Save(path string, eq *Data) error {
	raw, err := yaml.Marshal(eq)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func (d *Data) Validate() error {
	if d.Volumes < 1 {
		return fmt.Errorf("volumes must be at least 1, got %d", d.Volumes)
	}
	if d.Rpol <= 0 || d.Rtor <= 0 {
		return fmt.Errorf("periodicity radii must be positive, got rpol=%f rtor=%f", d.Rpol, d.Rtor)
	}
	if d.Field.MinorRadius <= 0 {
		return fmt.Errorf("minor radius must be positive, got %f", d.Field.MinorRadius)
	}
	if d.Field.MajorRadius <= d.Field.MinorRadius {
		return fmt.Errorf("major radius %f must exceed minor radius %f",
			d.Field.MajorRadius, d.Field.MinorRadius)
	}
	return nil
}

// flux.Equilibrium implementation.

func (d *Data) GeometryFlag() int       { return d.Geometry }
func (d *Data) VolumeCount() int        { return d.Volumes }
func (d *Data) PoloidalRadius() float64 { return d.Rpol }
func (d *Data) ToroidalRadius() float64 { return d.Rtor }
