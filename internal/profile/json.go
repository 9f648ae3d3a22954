package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// boundValue renders infinities as "inf"/"-inf" since JSON numbers cannot
// carry them.
type boundValue float64

func (b boundValue) MarshalJSON() ([]byte, error) {
	f := float64(b)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-inf"`), nil
	case math.IsNaN(f):
		return nil, fmt.Errorf("profile: NaN bound")
	}
	return json.Marshal(f)
}

func (b *boundValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "inf", "+inf":
			*b = boundValue(math.Inf(1))
		case "-inf":
			*b = boundValue(math.Inf(-1))
		default:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("profile: bad bound %q", s)
			}
			*b = boundValue(f)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = boundValue(f)
	return nil
}

type gaussianBunchJSON struct {
	LowerBound         [3]boundValue `json:"lower_bound"`
	UpperBound         [3]boundValue `json:"upper_bound"`
	RMSBunchSizeSI     float64       `json:"rms_bunch_size_si"`
	CentroidPositionSI [3]float64    `json:"centroid_position_si"`
	MaxDensitySI       float64       `json:"max_density_si"`
}

func toBounds(v r3.Vec) [3]boundValue {
	return [3]boundValue{boundValue(v.X), boundValue(v.Y), boundValue(v.Z)}
}

func fromBounds(b [3]boundValue) r3.Vec {
	return r3.Vec{X: float64(b[0]), Y: float64(b[1]), Z: float64(b[2])}
}

// MarshalJSON renders the profile after checking it.
func (g GaussianBunch) MarshalJSON() ([]byte, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	c := g.CentroidPositionSI
	return json.Marshal(gaussianBunchJSON{
		LowerBound:         toBounds(g.LowerBound),
		UpperBound:         toBounds(g.UpperBound),
		RMSBunchSizeSI:     g.RMSBunchSizeSI,
		CentroidPositionSI: [3]float64{c.X, c.Y, c.Z},
		MaxDensitySI:       g.MaxDensitySI,
	})
}

// UnmarshalJSON custom Unmarshal function.
func (g *GaussianBunch) UnmarshalJSON(b []byte) error {
	var raw gaussianBunchJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	g.LowerBound = fromBounds(raw.LowerBound)
	g.UpperBound = fromBounds(raw.UpperBound)
	g.RMSBunchSizeSI = raw.RMSBunchSizeSI
	c := raw.CentroidPositionSI
	g.CentroidPositionSI = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	g.MaxDensitySI = raw.MaxDensitySI
	return g.Check()
}
