package chart

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/japan-population/pkg/stats"
)

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
)

type cell struct {
	r     rune
	color string
}

// Terminal plots the table as coloured text. Each selected region is drawn
// with its palette colour; data points are dots joined by a thinner trail.
//
//	Total population
//	5,600,000│        ●●●●
//	         │   ●●●●     ●●●●
//	         │●●●             ●●●
//	1,300,000│  ●··●··●··●··●··●··●
//	         └────────────────────
//	          1960            2045
//	■ 北海道  ■ 青森県
func Terminal(t stats.Table, sel stats.Selection, lookup stats.Lookup, width, height int, palette []string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(t.Metric.Title()))
	sb.WriteString("\n")

	lines := Lines(t, sel, lookup, palette)
	lo, hi, ok := bounds(lines)
	years := t.Years()
	if !ok || len(years) == 0 {
		sb.WriteString(axisStyle.Render("(no data)"))
		sb.WriteString("\n")
		return sb.String()
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	p := message.NewPrinter(language.English)
	top := p.Sprintf("%.0f", hi)
	bottom := p.Sprintf("%.0f", lo)
	axisW := max(len(top), len(bottom))

	if height < 3 {
		height = 3
	}
	plotW := width - axisW - 1
	if plotW < 10 {
		plotW = 10
	}

	grid := make([][]cell, height)
	for r := range grid {
		grid[r] = make([]cell, plotW)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
		}
	}

	colOf := func(year int) int {
		if len(years) == 1 {
			return plotW / 2
		}
		span := float64(years[len(years)-1] - years[0])
		return int(float64(year-years[0]) / span * float64(plotW-1))
	}
	rowOf := func(v float64) int {
		return height - 1 - int((v-lo)/(hi-lo)*float64(height-1)+0.5)
	}

	for _, l := range lines {
		for i, pt := range l.Points {
			c, r := colOf(pt.Year), rowOf(pt.Value)
			if i > 0 {
				prev := l.Points[i-1]
				pc, pr := colOf(prev.Year), rowOf(prev.Value)
				for x := pc + 1; x < c; x++ {
					y := pr + int(float64(r-pr)*float64(x-pc)/float64(c-pc)+0.5)
					grid[y][x] = cell{r: '·', color: l.Color}
				}
			}
			grid[r][c] = cell{r: '●', color: l.Color}
		}
	}

	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		sb.WriteString(axisStyle.Render(strings.Repeat(" ", axisW-len(label)) + label + "│"))
		for _, c := range row {
			if c.color == "" {
				sb.WriteRune(c.r)
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(string(c.r)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(axisStyle.Render(strings.Repeat(" ", axisW) + "└" + strings.Repeat("─", plotW)))
	sb.WriteString("\n")
	first, last := strconv.Itoa(years[0]), strconv.Itoa(years[len(years)-1])
	gap := plotW - len(first) - len(last)
	if len(years) == 1 || gap < 1 {
		sb.WriteString(axisStyle.Render(strings.Repeat(" ", axisW+1) + first))
	} else {
		sb.WriteString(axisStyle.Render(strings.Repeat(" ", axisW+1) + first + strings.Repeat(" ", gap) + last))
	}
	sb.WriteString("\n")

	var legend []string
	for _, l := range lines {
		mark := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("■")
		name := l.Name
		if len(l.Points) == 0 {
			name += " (no data)"
		}
		legend = append(legend, mark+" "+name)
	}
	sb.WriteString(strings.Join(legend, "  "))
	sb.WriteString("\n")
	return sb.String()
}
