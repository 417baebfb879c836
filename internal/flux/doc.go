// Package flux provides core primitives for magnetic field-line tracing.
//
// The package defines the fundamental types for following field lines
// through one nested volume of a plasma equilibrium:
//
//   - [State]: vector in solver-internal (s, theta, zeta) coordinates
//   - [Oracle]: interface answering field and coordinate queries
//   - [Problem]: the field-line ODE problem for a single volume
//   - [Geometry]: slab, cylindrical or toroidal topology
//
// The field-line system of ODEs is
//
//	ds/dzeta     = B^s / B^zeta
//	dtheta/dzeta = B^theta / B^zeta
//
// with the toroidal angle zeta as the independent variable.
//
// # Example
//
//	oracle := bfield.NewTokamak()
//	prob, _ := flux.New(eq, 1, oracle)
//	dst, _ := prob.RHS(0, flux.State{0.5, 0})
//
// # Thread Safety
//
// Problem values are immutable after construction. Concurrent use is safe
// only if the underlying Oracle documents safe concurrent read access;
// this package neither assumes nor enforces that.
package flux
