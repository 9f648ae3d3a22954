package momentum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit/constant"
)

var (
	// ErrAnisotropic indicates per-axis rms velocities that differ.
	ErrAnisotropic = errors.New("momentum: rms velocity must be equal on all axes")

	// ErrInvalidMass indicates a non-positive or non-finite particle mass.
	ErrInvalidMass = errors.New("momentum: particle mass must be positive")

	// ErrNegativeTemperature ...
	ErrNegativeTemperature = errors.New("momentum: temperature must not be negative")
)

const joulePerKeV = float64(constant.ElementaryCharge) * 1e3

// Temperature is an isotropic thermal spread.
type Temperature struct {
	KeV float64 `json:"temperature_kev"`
}

// NewTemperatureFromRMSVelocity converts a per-axis rms velocity (m/s) of a
// particle with the given mass (kg) into kT = m*v_rms^2.
//
// The zero vector is not a temperature; callers treat it as "no thermal
// initialization" and never get here with it.
func NewTemperatureFromRMSVelocity(massKg float64, rms r3.Vec) (*Temperature, error) {
	if math.IsNaN(massKg) || math.IsInf(massKg, 0) || massKg <= 0 {
		return nil, fmt.Errorf("%w: %g kg", ErrInvalidMass, massKg)
	}
	if !finite(rms) {
		return nil, fmt.Errorf("%w: rms velocity %v", ErrNonFinite, rms)
	}
	if rms.X != rms.Y || rms.Y != rms.Z {
		return nil, fmt.Errorf("%w: got %v", ErrAnisotropic, rms)
	}
	if rms.X < 0 {
		return nil, fmt.Errorf("%w: rms velocity %g m/s", ErrNegativeTemperature, rms.X)
	}

	return &Temperature{KeV: massKg * rms.X * rms.X / joulePerKeV}, nil
}

// RMSVelocity returns the per-axis rms velocity in m/s for a particle of the
// given mass.
func (t *Temperature) RMSVelocity(massKg float64) float64 {
	return math.Sqrt(t.KeV * joulePerKeV / massKg)
}
