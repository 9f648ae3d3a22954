// Package momentum provides the momentum initialization directives a particle
// species carries into a simulation:
//
//   - [Drift]: bulk motion, a normalized direction plus a Lorentz factor
//   - [Temperature]: isotropic thermal spread in keV
//
// Drifts are usually built from a gamma-velocity triple (gamma*v, m/s) with
// [NewDriftFromGammaVelocity]. A species without bulk motion carries no Drift
// at all; there is no zero-valued "no drift" directive.
package momentum
