// Package bfield provides analytic magnetic-field oracles for the three
// supported geometries. Each type implements [flux.Oracle], including
// the tangent (variational) system with exact analytic Jacobians, so
// field lines can be traced without an external equilibrium code.
package bfield
