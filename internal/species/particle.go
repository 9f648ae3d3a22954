package species

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/unit/constant"
)

// Particle is a predefined particle type.
type Particle struct {
	Name string `json:"name"`
	// MassSI in kg.
	MassSI float64 `json:"mass_si"`
	// ChargeSI in C.
	ChargeSI float64 `json:"charge_si"`
}

var elementaryCharge = float64(constant.ElementaryCharge)

var particles = map[string]Particle{
	"electron": {Name: "electron", MassSI: 9.1093837015e-31, ChargeSI: -elementaryCharge},
	"positron": {Name: "positron", MassSI: 9.1093837015e-31, ChargeSI: elementaryCharge},
	"proton":   {Name: "proton", MassSI: 1.67262192369e-27, ChargeSI: elementaryCharge},
}

// LookupParticle returns the predefined particle with the given name.
func LookupParticle(name string) (Particle, error) {
	p, ok := particles[name]
	if !ok {
		return Particle{}, fmt.Errorf("unknown particle: %s (available: %v)", name, ParticleNames())
	}
	return p, nil
}

// ParticleNames returns the predefined particle names, sorted.
func ParticleNames() []string {
	names := make([]string, 0, len(particles))
	for name := range particles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
