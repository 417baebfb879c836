// Package analysis provides field-line diagnostics built on the traced
// sections and the tangent (variational) system:
//
//   - [RotationNumber]: rotational transform iota from section crossings
//   - [IotaProfile]: iota sampled across the radial extent of a volume
//   - [Residue]: Greene's residue of a periodic field line
//
// # Stability
//
// Greene's residue classifies a periodic orbit of the section map:
// a residue in (0, 1) is stable (elliptic), outside that range
// unstable (hyperbolic), and the KAM surface between island chains
// survives while the residues of the chains bounding it stay small.
package analysis
