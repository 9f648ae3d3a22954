// Package profile holds spatial density profiles consumed by the density
// initialization stage of a species.
package profile

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrInvalidProfile indicates a profile failing its consistency check.
	ErrInvalidProfile = errors.New("profile: invalid density profile")

	// ErrInvalidSampling indicates a line-out request that cannot be sampled.
	ErrInvalidSampling = errors.New("profile: invalid line-out sampling")
)

// Axis selects a cartesian axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis ...
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("profile: unknown axis %q", s)
}

// Unbounded returns the lower and upper corner of an unclipped box.
func Unbounded() (lower, upper r3.Vec) {
	inf := math.Inf(1)
	return r3.Vec{X: -inf, Y: -inf, Z: -inf}, r3.Vec{X: inf, Y: inf, Z: inf}
}

// GaussianBunch is an isotropic 3D Gaussian number density, clipped to the
// box [LowerBound, UpperBound].
type GaussianBunch struct {
	LowerBound r3.Vec
	UpperBound r3.Vec

	// RMSBunchSizeSI is the standard deviation along every axis in m.
	RMSBunchSizeSI float64
	// CentroidPositionSI is the bunch center in m.
	CentroidPositionSI r3.Vec
	// MaxDensitySI is the peak number density at the centroid in m^-3.
	MaxDensitySI float64
}

// Check reports whether the profile can seed a simulation.
func (g *GaussianBunch) Check() error {
	if !(g.RMSBunchSizeSI > 0) || math.IsInf(g.RMSBunchSizeSI, 0) {
		return fmt.Errorf("%w: rms bunch size %g m must be positive and finite", ErrInvalidProfile, g.RMSBunchSizeSI)
	}
	if math.IsNaN(g.MaxDensitySI) || math.IsInf(g.MaxDensitySI, 0) || g.MaxDensitySI < 0 {
		return fmt.Errorf("%w: max density %g m^-3", ErrInvalidProfile, g.MaxDensitySI)
	}
	c := g.CentroidPositionSI
	for _, v := range [3]float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: centroid %v", ErrInvalidProfile, c)
		}
	}
	lo, hi := g.LowerBound, g.UpperBound
	if !(lo.X < hi.X && lo.Y < hi.Y && lo.Z < hi.Z) {
		return fmt.Errorf("%w: lower bound %v not below upper bound %v", ErrInvalidProfile, lo, hi)
	}
	return nil
}

// Contains reports whether p lies inside the clip box. The lower bound is
// inclusive, the upper bound exclusive.
func (g *GaussianBunch) Contains(p r3.Vec) bool {
	lo, hi := g.LowerBound, g.UpperBound
	return p.X >= lo.X && p.X < hi.X &&
		p.Y >= lo.Y && p.Y < hi.Y &&
		p.Z >= lo.Z && p.Z < hi.Z
}

// DensityAt returns the number density in m^-3 at p.
func (g *GaussianBunch) DensityAt(p r3.Vec) float64 {
	if !g.Contains(p) {
		return 0
	}
	d2 := r3.Norm2(r3.Sub(p, g.CentroidPositionSI))
	return g.MaxDensitySI * math.Exp(-d2/(2*g.RMSBunchSizeSI*g.RMSBunchSizeSI))
}

// LineOut samples the density along axis through the centroid, over
// centroid +- span*RMSBunchSizeSI. It returns the sample positions along the
// axis and the densities there.
func (g *GaussianBunch) LineOut(axis Axis, samples int, span float64) (pos, density []float64, err error) {
	if samples < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidSampling, samples)
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return nil, nil, fmt.Errorf("%w: span %g", ErrInvalidSampling, span)
	}
	if axis < AxisX || axis > AxisZ {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSampling, axis)
	}
	if err := g.Check(); err != nil {
		return nil, nil, err
	}

	half := span * g.RMSBunchSizeSI
	step := 2 * half / float64(samples-1)

	pos = make([]float64, samples)
	density = make([]float64, samples)
	for i := 0; i < samples; i++ {
		p := g.CentroidPositionSI
		offset := -half + float64(i)*step
		switch axis {
		case AxisX:
			p.X += offset
			pos[i] = p.X
		case AxisY:
			p.Y += offset
			pos[i] = p.Y
		case AxisZ:
			p.Z += offset
			pos[i] = p.Z
		}
		density[i] = g.DensityAt(p)
	}
	return pos, density, nil
}
