package chart

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/japan-population/pkg/stats"
)

// Format selects the image encoding of Render.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return FormatPNG, fmt.Errorf("unknown image format %q", s)
}

type Options struct {
	Format  Format
	Width   int
	Height  int
	Palette []string
	Title   string
	// Font replaces the built-in font, which has no CJK glyphs.
	Font *truetype.Font
}

// LoadFont parses a TrueType font file for Options.Font.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

func lineStyle(hex string) gochart.Style {
	col := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// Render draws one line per selected region against the table's years.
func Render(w io.Writer, t stats.Table, sel stats.Selection, lookup stats.Lookup, opts Options) error {
	if t.Len() == 0 {
		return ErrNoData
	}
	lines := Lines(t, sel, lookup, opts.Palette)

	var series []gochart.Series
	for _, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		xs := make([]float64, len(l.Points))
		ys := make([]float64, len(l.Points))
		for i, p := range l.Points {
			xs[i] = float64(p.Year)
			ys[i] = p.Value
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    l.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(l.Color),
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}

	years := t.Years()
	ticks := make([]gochart.Tick, len(years))
	for i, y := range years {
		ticks[i] = gochart.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	xRange := &gochart.ContinuousRange{Min: float64(years[0]), Max: float64(years[len(years)-1])}
	if xRange.Min == xRange.Max {
		xRange.Min--
		xRange.Max++
	}

	var yRange gochart.Range
	if lo, hi, _ := bounds(lines); lo == hi {
		yRange = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	p := message.NewPrinter(language.English)
	title := opts.Title
	if title == "" {
		title = t.Metric.Title()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 400
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Font:       opts.Font,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 30, Bottom: 5}},
		XAxis: gochart.XAxis{
			Name:  "Year",
			Range: xRange,
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range: yRange,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return p.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	provider := gochart.PNG
	if opts.Format == FormatSVG {
		provider = gochart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
