// Package species assembles a simulation species from a particle type and a
// particle distribution.
package species

import (
	"errors"

	"github.com/san-kum/picbunch/internal/momentum"
	"github.com/san-kum/picbunch/internal/profile"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMissingName ...
var ErrMissingName = errors.New("species: name must not be empty")

// Distribution is a particle distribution a species is initialized from.
type Distribution interface {
	// RMSVelocitySI returns the per-axis rms velocity in m/s, (0, 0, 0) for
	// no thermal initialization.
	RMSVelocitySI() r3.Vec
	// DensityProfile returns the spatial density.
	DensityProfile() (*profile.GaussianBunch, error)
	// Drift returns the bulk drift or nil.
	Drift() (*momentum.Drift, error)
}

// Species is a fully initialized particle population.
type Species struct {
	Name        string                 `json:"name"`
	Particle    Particle               `json:"particle"`
	Density     *profile.GaussianBunch `json:"density_profile"`
	Drift       *momentum.Drift        `json:"drift"`
	Temperature *momentum.Temperature  `json:"temperature"`
}

// AssemblyError wraps an error with the species it was raised for.
type AssemblyError struct {
	Species string
	Stage   string
	Wrapped error
}

func (e *AssemblyError) Error() string {
	return "species " + e.Species + ": " + e.Stage + ": " + e.Wrapped.Error()
}

func (e *AssemblyError) Unwrap() error {
	return e.Wrapped
}

// Assemble initializes a species named name from dist.
func Assemble(name string, particle Particle, dist Distribution) (*Species, error) {
	if name == "" {
		return nil, ErrMissingName
	}

	density, err := dist.DensityProfile()
	if err != nil {
		return nil, &AssemblyError{Species: name, Stage: "density", Wrapped: err}
	}

	drift, err := dist.Drift()
	if err != nil {
		return nil, &AssemblyError{Species: name, Stage: "drift", Wrapped: err}
	}

	var temp *momentum.Temperature
	if rms := dist.RMSVelocitySI(); rms != (r3.Vec{}) {
		temp, err = momentum.NewTemperatureFromRMSVelocity(particle.MassSI, rms)
		if err != nil {
			return nil, &AssemblyError{Species: name, Stage: "temperature", Wrapped: err}
		}
	}

	return &Species{
		Name:        name,
		Particle:    particle,
		Density:     density,
		Drift:       drift,
		Temperature: temp,
	}, nil
}
