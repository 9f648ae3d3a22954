package species

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/picbunch/internal/bunch"
	"github.com/san-kum/picbunch/internal/momentum"
)

func electron(t *testing.T) Particle {
	t.Helper()
	p, err := LookupParticle("electron")
	require.NoError(t, err)
	return p
}

func TestAssemble_ColdBunchAtRest(t *testing.T) {
	dist := bunch.NewAdapter(bunch.Parameters{
		RMSBunchSize:       1e-6,
		NPhysicalParticles: 1e9,
	})

	s, err := Assemble("e", electron(t), dist)
	require.NoError(t, err)

	assert.Equal(t, "e", s.Name)
	assert.NotNil(t, s.Density)
	assert.Nil(t, s.Drift)
	assert.Nil(t, s.Temperature)
}

func TestAssemble_DriftingThermalBunch(t *testing.T) {
	dist := bunch.NewAdapter(bunch.Parameters{
		RMSBunchSize:       1e-6,
		NPhysicalParticles: 1e9,
		CentroidVelocity:   r3.Vec{Z: 1e8},
		RMSVelocity:        r3.Vec{X: 1e5, Y: 1e5, Z: 1e5},
	})

	s, err := Assemble("e", electron(t), dist)
	require.NoError(t, err)

	require.NotNil(t, s.Drift)
	assert.Greater(t, s.Drift.Gamma, 1.0)
	require.NotNil(t, s.Temperature)
	assert.InEpsilon(t, 1e5, s.Temperature.RMSVelocity(s.Particle.MassSI), 1e-12)
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params bunch.Parameters
		stage  string
		want   error
	}{
		{
			name:   "degenerate size",
			params: bunch.Parameters{RMSBunchSize: 0, NPhysicalParticles: 1},
			stage:  "density",
			want:   bunch.ErrDegenerateBunchSize,
		},
		{
			name: "anisotropic rms velocity",
			params: bunch.Parameters{
				RMSBunchSize: 1e-6, NPhysicalParticles: 1,
				RMSVelocity: r3.Vec{X: 1, Y: 2, Z: 3},
			},
			stage: "temperature",
			want:  momentum.ErrAnisotropic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble("e", electron(t), bunch.NewAdapter(tt.params))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var aerr *AssemblyError
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, tt.stage, aerr.Stage)
			assert.Equal(t, "e", aerr.Species)
		})
	}

	_, err := Assemble("", electron(t), bunch.NewAdapter(bunch.Parameters{RMSBunchSize: 1}))
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestSpeciesJSON(t *testing.T) {
	dist := bunch.NewAdapter(bunch.Parameters{
		RMSBunchSize:       1,
		NPhysicalParticles: 1,
		CentroidVelocity:   r3.Vec{X: 1},
	})
	s, err := Assemble("witness", electron(t), dist)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "witness", raw["name"])
	assert.Nil(t, raw["temperature"])
	assert.Contains(t, raw, "drift")
	assert.Contains(t, raw["density_profile"], "max_density_si")

	var back Species
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Density, back.Density)
	assert.Equal(t, s.Drift.Gamma, back.Drift.Gamma)
}

func TestLookupParticle(t *testing.T) {
	p, err := LookupParticle("proton")
	require.NoError(t, err)
	assert.Positive(t, p.ChargeSI)
	assert.Greater(t, p.MassSI, electron(t).MassSI)

	_, err = LookupParticle("muon")
	assert.Error(t, err)

	assert.Equal(t, []string{"electron", "positron", "proton"}, ParticleNames())
}
