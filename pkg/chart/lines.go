// Package chart renders merged population tables as line charts, either as
// images (PNG, SVG) or as coloured text for terminals.
package chart

import (
	"errors"

	"github.com/anrid/japan-population/pkg/stats"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// DefaultPalette is cycled through by line index.
var DefaultPalette = []string{"#8884d8", "#82ca9d", "#ffc658"}

// Line is one region's series as drawn on the shared year axis.
type Line struct {
	Code   int
	Name   string
	Color  string
	Points []stats.Point
}

// Color returns the palette colour for the i-th line.
func Color(palette []string, i int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[i%len(palette)]
}

// Lines returns one line per selected region, in selection order. Regions
// without data in t get a line with no points.
func Lines(t stats.Table, sel stats.Selection, lookup stats.Lookup, palette []string) []Line {
	lines := make([]Line, len(sel))
	for i, code := range sel {
		name := lookup.Name(code)
		lines[i] = Line{
			Code:   code,
			Name:   name,
			Color:  Color(palette, i),
			Points: t.Points(name),
		}
	}
	return lines
}

// bounds returns the value range over all lines.
func bounds(lines []Line) (lo, hi float64, ok bool) {
	for _, l := range lines {
		for _, p := range l.Points {
			if !ok || p.Value < lo {
				lo = p.Value
			}
			if !ok || p.Value > hi {
				hi = p.Value
			}
			ok = true
		}
	}
	return lo, hi, ok
}
