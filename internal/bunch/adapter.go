package bunch

import (
	"math"

	"github.com/san-kum/picbunch/internal/momentum"
	"github.com/san-kum/picbunch/internal/profile"
	"gonum.org/v1/gonum/spatial/r3"
)

// Parameters describe a Gaussian bunch. They are expected to be validated
// before they reach an Adapter.
type Parameters struct {
	// RMSBunchSize is the standard deviation along every axis in m.
	RMSBunchSize float64
	// CentroidPosition in m.
	CentroidPosition r3.Vec
	// CentroidVelocity is gamma*v in m/s.
	CentroidVelocity r3.Vec
	// RMSVelocity is the per-axis velocity spread in m/s.
	RMSVelocity r3.Vec
	// NPhysicalParticles is the number of real particles in the bunch.
	NPhysicalParticles float64
}

// Adapter translates Parameters into species initialization records.
type Adapter struct {
	params Parameters
}

func NewAdapter(p Parameters) *Adapter {
	return &Adapter{params: p}
}

// Parameters returns a copy of the wrapped parameters.
func (a *Adapter) Parameters() Parameters {
	return a.params
}

// RMSVelocitySI returns the rms velocity in m/s. (0, 0, 0) means the bunch
// requests no thermal initialization.
func (a *Adapter) RMSVelocitySI() r3.Vec {
	return a.params.RMSVelocity
}

// DensityProfile returns the unclipped Gaussian density of the bunch.
//
// The peak density of an isotropic Gaussian with N particles and standard
// deviation sigma is N / (2*pi*sigma^2)^(3/2).
func (a *Adapter) DensityProfile() (*profile.GaussianBunch, error) {
	sigma := a.params.RMSBunchSize
	if sigma == 0 {
		return nil, &ProfileError{Params: a.params, Wrapped: ErrDegenerateBunchSize}
	}

	// TODO: clip to the bounds of the owning species once it forwards them.
	lower, upper := profile.Unbounded()

	return &profile.GaussianBunch{
		LowerBound:         lower,
		UpperBound:         upper,
		RMSBunchSizeSI:     sigma,
		CentroidPositionSI: a.params.CentroidPosition,
		MaxDensitySI:       a.params.NPhysicalParticles / math.Pow(2*math.Pi*sigma*sigma, 1.5),
	}, nil
}

// Drift returns the bulk drift of the bunch, or nil if the centroid velocity
// is exactly zero.
func (a *Adapter) Drift() (*momentum.Drift, error) {
	if a.params.CentroidVelocity == (r3.Vec{}) {
		return nil, nil
	}
	return momentum.NewDriftFromGammaVelocity(a.params.CentroidVelocity)
}
