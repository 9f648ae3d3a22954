package config

import "sort"

// Presets are keyed by particle, then preset name.
var Presets = map[string]map[string]*Config{
	"electron": {
		"cold": {
			Species: "electrons", Particle: "electron",
			Distribution: DistributionConfig{
				RMSBunchSize: 1e-6, NPhysicalParticles: 1e9,
				CentroidPosition: []float64{0, 0, 0},
				CentroidVelocity: []float64{0, 0, 0},
				RMSVelocity:      []float64{0, 0, 0},
			},
		},
		"witness": {
			Species: "witness", Particle: "electron",
			Distribution: DistributionConfig{
				RMSBunchSize: 2e-6, NPhysicalParticles: 6.24e8,
				CentroidPosition: []float64{0, 0, 2e-5},
				CentroidVelocity: []float64{0, 0, 5.9e10},
				RMSVelocity:      []float64{0, 0, 0},
			},
		},
		"thermal": {
			Species: "hot_electrons", Particle: "electron",
			Distribution: DistributionConfig{
				RMSBunchSize: 5e-6, NPhysicalParticles: 1e10,
				CentroidPosition: []float64{0, 0, 0},
				CentroidVelocity: []float64{0, 0, 0},
				RMSVelocity:      []float64{1e6, 1e6, 1e6},
			},
		},
	},
	"positron": {
		"drifting": {
			Species: "positrons", Particle: "positron",
			Distribution: DistributionConfig{
				RMSBunchSize: 3e-6, NPhysicalParticles: 1e8,
				CentroidPosition: []float64{0, 0, 0},
				CentroidVelocity: []float64{0, 0, 3e9},
				RMSVelocity:      []float64{0, 0, 0},
			},
		},
	},
	"proton": {
		"beam": {
			Species: "protons", Particle: "proton",
			Distribution: DistributionConfig{
				RMSBunchSize: 1e-4, NPhysicalParticles: 1e11,
				CentroidPosition: []float64{0, 0, 0},
				CentroidVelocity: []float64{0, 0, 1.3e8},
				RMSVelocity:      []float64{1e4, 1e4, 1e4},
			},
		},
	},
}

// GetPreset returns a copy of the named preset with default line-out
// settings, or nil.
func GetPreset(particle, preset string) *Config {
	particlePresets, ok := Presets[particle]
	if !ok {
		return nil
	}
	cfg, ok := particlePresets[preset]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	if out.LineOut == (LineOutConfig{}) {
		out.LineOut = DefaultConfig().LineOut
	}
	return out
}

func ListPresets(particle string) []string {
	particlePresets, ok := Presets[particle]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(particlePresets))
	for name := range particlePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListParticles returns the particles that have presets.
func ListParticles() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
