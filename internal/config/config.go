package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/picbunch/internal/bunch"
	"github.com/san-kum/picbunch/internal/profile"
	"github.com/san-kum/picbunch/internal/species"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultSpecies      = "bunch"
	DefaultParticle     = "electron"
	DefaultBunchSize    = 1e-6
	DefaultParticles    = 1e9
	DefaultLineOutAxis  = "z"
	DefaultLineOutSpan  = 4.0
	DefaultLineOutCount = 81
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Species      string             `yaml:"species"`
	Particle     string             `yaml:"particle"`
	Distribution DistributionConfig `yaml:"distribution"`
	LineOut      LineOutConfig      `yaml:"lineout"`
}

// DistributionConfig is a Gaussian bunch distribution. Vectors are
// three-element sequences in SI units.
type DistributionConfig struct {
	RMSBunchSize       float64   `yaml:"rms_bunch_size"`
	CentroidPosition   []float64 `yaml:"centroid_position"`
	CentroidVelocity   []float64 `yaml:"centroid_velocity"`
	RMSVelocity        []float64 `yaml:"rms_velocity"`
	NPhysicalParticles float64   `yaml:"n_physical_particles"`
}

type LineOutConfig struct {
	Axis    string  `yaml:"axis"`
	Samples int     `yaml:"samples"`
	Span    float64 `yaml:"span"`
}

func DefaultConfig() *Config {
	return &Config{
		Species:  DefaultSpecies,
		Particle: DefaultParticle,
		Distribution: DistributionConfig{
			RMSBunchSize:       DefaultBunchSize,
			CentroidPosition:   []float64{0, 0, 0},
			CentroidVelocity:   []float64{0, 0, 0},
			RMSVelocity:        []float64{0, 0, 0},
			NPhysicalParticles: DefaultParticles,
		},
		LineOut: LineOutConfig{
			Axis:    DefaultLineOutAxis,
			Samples: DefaultLineOutCount,
			Span:    DefaultLineOutSpan,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	d := &out.Distribution
	d.CentroidPosition = append([]float64(nil), c.Distribution.CentroidPosition...)
	d.CentroidVelocity = append([]float64(nil), c.Distribution.CentroidVelocity...)
	d.RMSVelocity = append([]float64(nil), c.Distribution.RMSVelocity...)
	return &out
}

// Validate checks the configuration once, before it reaches the bunch
// adapter. The adapter itself does not re-check its input.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Species == "" {
		invalid("species name is empty")
	}
	if _, err := species.LookupParticle(c.Particle); err != nil {
		invalid("%v", err)
	}

	d := c.Distribution
	sizeOK := finite(d.RMSBunchSize) && d.RMSBunchSize > 0
	if !sizeOK {
		invalid("rms_bunch_size %g must be positive", d.RMSBunchSize)
	}
	countOK := finite(d.NPhysicalParticles) && d.NPhysicalParticles >= 0
	if !countOK {
		invalid("n_physical_particles %g must not be negative", d.NPhysicalParticles)
	}
	if sizeOK && countOK {
		s := d.RMSBunchSize
		if peak := d.NPhysicalParticles / math.Pow(2*math.Pi*s*s, 1.5); !finite(peak) {
			invalid("rms_bunch_size %g gives non-finite peak density %g", s, peak)
		}
	}
	for _, vf := range []struct {
		name string
		v    []float64
	}{
		{"centroid_position", d.CentroidPosition},
		{"centroid_velocity", d.CentroidVelocity},
		{"rms_velocity", d.RMSVelocity},
	} {
		name, v := vf.name, vf.v
		if len(v) != 3 {
			invalid("%s needs 3 components, got %d", name, len(v))
			continue
		}
		for _, x := range v {
			if !finite(x) {
				invalid("%s has non-finite component %g", name, x)
				break
			}
		}
	}
	if len(d.RMSVelocity) == 3 {
		for _, x := range d.RMSVelocity {
			if x < 0 {
				invalid("rms_velocity %v must not be negative", d.RMSVelocity)
				break
			}
		}
	}

	if _, err := profile.ParseAxis(c.LineOut.Axis); err != nil {
		invalid("lineout: %v", err)
	}
	if c.LineOut.Samples < 2 {
		invalid("lineout samples %d must be at least 2", c.LineOut.Samples)
	}
	if !finite(c.LineOut.Span) || c.LineOut.Span <= 0 {
		invalid("lineout span %g must be positive", c.LineOut.Span)
	}

	return errors.Join(errs...)
}

// BunchParameters returns the validated bunch description.
func (c *Config) BunchParameters() (bunch.Parameters, error) {
	if err := c.Validate(); err != nil {
		return bunch.Parameters{}, err
	}
	d := c.Distribution
	return bunch.Parameters{
		RMSBunchSize:       d.RMSBunchSize,
		CentroidPosition:   vec(d.CentroidPosition),
		CentroidVelocity:   vec(d.CentroidVelocity),
		RMSVelocity:        vec(d.RMSVelocity),
		NPhysicalParticles: d.NPhysicalParticles,
	}, nil
}

// LineOutAxis returns the configured line-out axis.
func (c *Config) LineOutAxis() (profile.Axis, error) {
	return profile.ParseAxis(c.LineOut.Axis)
}

func vec(v []float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
