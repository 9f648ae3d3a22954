// Package bunch translates a Gaussian particle bunch description into the
// records a simulation species is initialized from.
//
// A bunch is described by [Parameters]: an isotropic rms size, a centroid
// position, a centroid gamma-velocity, a per-axis rms velocity and a physical
// particle count. An [Adapter] over those parameters yields:
//
//   - [Adapter.DensityProfile]: an unclipped Gaussian density profile whose
//     peak density normalizes the profile to the particle count
//   - [Adapter.Drift]: the bulk drift, or nil when the centroid is at rest
//   - [Adapter.RMSVelocitySI]: the rms velocity, left for the species to
//     turn into a temperature since that needs the particle mass
//
// # Example
//
//	a := bunch.NewAdapter(bunch.Parameters{
//		RMSBunchSize:       1e-6,
//		NPhysicalParticles: 1e9,
//		CentroidVelocity:   r3.Vec{Z: 3e9},
//	})
//	prof, err := a.DensityProfile()
//	drift, err := a.Drift()
//
// # Thread Safety
//
// Adapter holds an immutable copy of its parameters. All methods are pure and
// may be called concurrently.
package bunch
