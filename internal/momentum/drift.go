package momentum

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit/constant"
)

// SpeedOfLight in m/s.
const SpeedOfLight = float64(constant.LightSpeedInVacuum)

// directionTolerance bounds how far |Direction| may stray from 1.
const directionTolerance = 1e-9

var (
	// ErrZeroVelocity indicates a drift was requested for a vector of length zero.
	ErrZeroVelocity = errors.New("momentum: drift velocity must not be zero")

	// ErrNonFinite indicates a NaN or Inf component.
	ErrNonFinite = errors.New("momentum: non-finite component")

	// ErrSuperluminal indicates a plain velocity at or above the speed of light.
	ErrSuperluminal = errors.New("momentum: velocity must be below the speed of light")

	// ErrInvalidDrift indicates a Drift failing its own consistency check.
	ErrInvalidDrift = errors.New("momentum: invalid drift")
)

// Drift is bulk motion of a particle population.
type Drift struct {
	// Direction is the unit vector of motion.
	Direction r3.Vec
	// Gamma is the Lorentz factor, >= 1.
	Gamma float64
}

// NewDriftFromGammaVelocity builds a Drift from gamma*v in m/s.
//
// gamma follows from |gamma*v| = gamma*beta*c, i.e. gamma = sqrt(1 + (|gv|/c)^2).
func NewDriftFromGammaVelocity(gv r3.Vec) (*Drift, error) {
	if !finite(gv) {
		return nil, fmt.Errorf("%w: gamma velocity %v", ErrNonFinite, gv)
	}
	dir, scale, n, ok := direction(gv)
	if !ok {
		return nil, ErrZeroVelocity
	}

	d := &Drift{
		Direction: dir,
		Gamma:     math.Hypot(1, scale/SpeedOfLight*n),
	}
	if err := d.Check(); err != nil {
		return nil, fmt.Errorf("gamma velocity %v: %w", gv, err)
	}
	return d, nil
}

// NewDriftFromVelocity builds a Drift from a plain velocity v in m/s.
func NewDriftFromVelocity(v r3.Vec) (*Drift, error) {
	if !finite(v) {
		return nil, fmt.Errorf("%w: velocity %v", ErrNonFinite, v)
	}
	dir, scale, n, ok := direction(v)
	if !ok {
		return nil, ErrZeroVelocity
	}
	norm := scale * n
	if norm >= SpeedOfLight {
		return nil, fmt.Errorf("%w: |v| = %g m/s", ErrSuperluminal, norm)
	}

	beta := norm / SpeedOfLight
	d := &Drift{
		Direction: dir,
		Gamma:     1 / math.Sqrt((1-beta)*(1+beta)),
	}
	if err := d.Check(); err != nil {
		return nil, fmt.Errorf("velocity %v: %w", v, err)
	}
	return d, nil
}

// direction returns the unit vector along v with |v| = scale*n. v is
// rescaled by its largest component first so subnormal and huge inputs keep
// full precision.
func direction(v r3.Vec) (dir r3.Vec, scale, n float64, ok bool) {
	scale = math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if scale == 0 {
		return r3.Vec{}, 0, 0, false
	}
	s := r3.Vec{X: v.X / scale, Y: v.Y / scale, Z: v.Z / scale}
	n = r3.Norm(s)
	return r3.Vec{X: s.X / n, Y: s.Y / n, Z: s.Z / n}, scale, n, true
}

// GammaVelocity returns gamma*v in m/s.
func (d *Drift) GammaVelocity() r3.Vec {
	// gamma*beta = sqrt(gamma^2 - 1)
	return r3.Scale(SpeedOfLight*math.Sqrt(d.Gamma*d.Gamma-1), d.Direction)
}

// Check reports whether the drift is physically consistent.
func (d *Drift) Check() error {
	if math.IsNaN(d.Gamma) || math.IsInf(d.Gamma, 0) || d.Gamma < 1 {
		return fmt.Errorf("%w: gamma %g must be >= 1", ErrInvalidDrift, d.Gamma)
	}
	if !finite(d.Direction) {
		return fmt.Errorf("%w: direction %v", ErrInvalidDrift, d.Direction)
	}
	if n := r3.Norm(d.Direction); math.Abs(n-1) > directionTolerance {
		return fmt.Errorf("%w: direction length %g, want 1", ErrInvalidDrift, n)
	}
	return nil
}

type vecJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type driftJSON struct {
	Direction vecJSON `json:"direction_normalized"`
	Gamma     float64 `json:"gamma"`
}

// MarshalJSON renders the drift after checking it.
func (d Drift) MarshalJSON() ([]byte, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	return json.Marshal(driftJSON{
		Direction: vecJSON{X: d.Direction.X, Y: d.Direction.Y, Z: d.Direction.Z},
		Gamma:     d.Gamma,
	})
}

// UnmarshalJSON ...
func (d *Drift) UnmarshalJSON(b []byte) error {
	var raw driftJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Direction = r3.Vec{X: raw.Direction.X, Y: raw.Direction.Y, Z: raw.Direction.Z}
	d.Gamma = raw.Gamma
	return d.Check()
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
