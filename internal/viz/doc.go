// Package viz renders assembled species for the terminal.
//
//   - [Summary]: a lipgloss panel with the density, drift and temperature
//   - [PlotLineOut]: an ascii graph of a density line-out plus a sparkline
//
// Output is plain text; styles degrade to uncolored text when stdout is not a
// terminal.
package viz
