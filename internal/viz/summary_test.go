package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/picbunch/internal/bunch"
	"github.com/san-kum/picbunch/internal/profile"
	"github.com/san-kum/picbunch/internal/species"
	"github.com/san-kum/picbunch/internal/storage"
)

func assemble(t *testing.T, p bunch.Parameters) *species.Species {
	t.Helper()
	particle, err := species.LookupParticle("electron")
	if err != nil {
		t.Fatal(err)
	}
	sp, err := species.Assemble("witness", particle, bunch.NewAdapter(p))
	if err != nil {
		t.Fatal(err)
	}
	return sp
}

func TestSummary(t *testing.T) {
	sp := assemble(t, bunch.Parameters{RMSBunchSize: 1e-6, NPhysicalParticles: 1e9})
	out := Summary(sp)

	for _, want := range []string{"species witness", "electron", "unbounded", "peak density"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "none") != 2 {
		t.Errorf("expected drift and temperature to be none:\n%s", out)
	}
}

func TestSummary_Drifting(t *testing.T) {
	sp := assemble(t, bunch.Parameters{
		RMSBunchSize:       1e-6,
		NPhysicalParticles: 1e9,
		CentroidVelocity:   r3.Vec{Z: 3e9},
		RMSVelocity:        r3.Vec{X: 1e5, Y: 1e5, Z: 1e5},
	})
	out := Summary(sp)

	if !strings.Contains(out, "gamma") {
		t.Errorf("summary missing drift:\n%s", out)
	}
	if !strings.Contains(out, "keV") {
		t.Errorf("summary missing temperature:\n%s", out)
	}
}

func TestPlotLineOut(t *testing.T) {
	sp := assemble(t, bunch.Parameters{RMSBunchSize: 1e-6, NPhysicalParticles: 1e9})
	pos, density, err := sp.Density.LineOut(profile.AxisX, 41, 4)
	if err != nil {
		t.Fatal(err)
	}

	out := PlotLineOut(&storage.LineOut{Axis: profile.AxisX, Position: pos, Density: density}, 60, 8)
	if !strings.Contains(out, "along x") {
		t.Errorf("plot missing caption:\n%s", out)
	}

	if got := PlotLineOut(&storage.LineOut{}, 60, 8); !strings.Contains(got, "no samples") {
		t.Errorf("expected empty plot notice, got %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("expected flat line, got %q", got)
	}

	out := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("expected full range of bars, got %q", out)
	}
}
