package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/picbunch/internal/species"
	"github.com/san-kum/picbunch/internal/storage"
	"gonum.org/v1/gonum/spatial/r3"
)

// Summary renders a styled panel describing sp.
func Summary(sp *species.Species) string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, MetricLabel.Render(fmt.Sprintf("%-18s", label))+" "+value)
	}

	row("particle", MetricValue.Render(sp.Particle.Name))
	if d := sp.Density; d != nil {
		c := d.CentroidPositionSI
		row("rms size", MetricValue.Render(fmt.Sprintf("%.4g m", d.RMSBunchSizeSI)))
		row("centroid", MetricValue.Render(fmt.Sprintf("(%.4g, %.4g, %.4g) m", c.X, c.Y, c.Z)))
		row("peak density", MetricValue.Render(fmt.Sprintf("%.6g m^-3", d.MaxDensitySI)))
		if unbounded(d.LowerBound, -1) && unbounded(d.UpperBound, 1) {
			row("bounds", Subtle.Render("unbounded"))
		} else {
			row("bounds", MetricValue.Render(fmt.Sprintf("%v .. %v", d.LowerBound, d.UpperBound)))
		}
	}
	if dr := sp.Drift; dr != nil {
		dir := dr.Direction
		row("drift", Present.Render(fmt.Sprintf("gamma %.6g along (%.3f, %.3f, %.3f)", dr.Gamma, dir.X, dir.Y, dir.Z)))
	} else {
		row("drift", Absent.Render("none"))
	}
	if t := sp.Temperature; t != nil {
		row("temperature", Present.Render(fmt.Sprintf("%.6g keV", t.KeV)))
	} else {
		row("temperature", Absent.Render("none"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		Title.Render("species "+sp.Name),
		"",
		strings.Join(rows, "\n"),
	)
	return Panel.Render(body)
}

// PlotLineOut renders a density line-out as an ascii graph.
func PlotLineOut(lo *storage.LineOut, width, height int) string {
	if len(lo.Density) == 0 {
		return Subtle.Render("no samples")
	}

	caption := fmt.Sprintf("density [m^-3] along %s, %.4g .. %.4g m",
		lo.Axis, lo.Position[0], lo.Position[len(lo.Position)-1])

	return asciigraph.Plot(lo.Density,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	) + "\n" + Sparkline(lo.Density, width)
}

func unbounded(v r3.Vec, sign int) bool {
	return math.IsInf(v.X, sign) && math.IsInf(v.Y, sign) && math.IsInf(v.Z, sign)
}
