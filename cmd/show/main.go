package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/anrid/japan-population/pkg/chart"
	"github.com/anrid/japan-population/pkg/config"
	"github.com/anrid/japan-population/pkg/stats"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("show: ")

	cfg := config.Load()

	var (
		prefs    = flag.String("pref", "", "comma separated prefecture codes, e.g. 1,13,27")
		metric   = flag.String("metric", cfg.Metric.String(), "total, youth, working-age or elderly")
		out      = flag.String("out", "", "write the chart to this .png or .svg file")
		format   = flag.String("format", "", "chart format: png, svg or text (default from -out extension, else text)")
		xlsxPath = flag.String("xlsx", "", "also write the table to this .xlsx file")
		replay   = flag.String("replay", "", "render a workbook written by -xlsx instead of calling the API")
		strict   = flag.Bool("strict", cfg.Policy == stats.PolicyStrict, "fail when any prefecture cannot be fetched")
		fontPath = flag.String("font", "", "TrueType font for image charts (needed for Japanese names)")
		width    = flag.Int("width", cfg.Width, "chart width in pixels, or columns for text")
		height   = flag.Int("height", cfg.Height, "chart height in pixels, or rows for text")
		dump     = flag.Bool("dump", false, "dump the merged table")
		verbose  = flag.Bool("v", false, "log every request")
	)
	flag.Parse()

	m, err := stats.ParseMetric(*metric)
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg.Metric = m
	if *strict {
		cfg.Policy = stats.PolicyStrict
	}

	var (
		table  stats.Table
		sel    stats.Selection
		lookup stats.Lookup
	)

	if *replay != "" {
		f, err := os.Open(*replay)
		if err != nil {
			log.Fatalf("%v", err)
		}
		wb, err := stats.ReadXLSX(bufio.NewReader(f))
		f.Close()
		if err != nil {
			log.Fatalf("replay %s: %v", *replay, err)
		}
		table = wb.Table
		sel, lookup = wb.Selection()
	} else {
		if sel, err = stats.ParseSelection(*prefs); err != nil {
			log.Fatalf("%v", err)
		}
		if len(sel) == 0 {
			log.Fatalf("no prefectures selected, use -pref (see the regions command for codes)")
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("%v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		table, lookup = fetch(ctx, cfg, sel, *verbose)
	}

	if *dump {
		spew.Dump(table)
	}

	p := message.NewPrinter(language.English)
	p.Printf("%s: %d years, %d prefectures\n\n", table.Metric.Title(), table.Len(), len(sel))
	if err := chart.WriteTable(os.Stdout, table, sel, lookup); err != nil {
		log.Fatalf("%v", err)
	}

	kind := *format
	if kind == "" {
		kind = "text"
		if *out != "" {
			kind = strings.TrimPrefix(filepath.Ext(*out), ".")
		}
	}

	if kind == "text" {
		fmt.Println()
		fmt.Print(chart.Terminal(table, sel, lookup, min(*width, 120), min(*height, 20), cfg.Palette))
	} else if *out != "" {
		if err := writeImage(*out, kind, *fontPath, *width, *height, cfg.Palette, table, sel, lookup); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", *out)
	} else {
		log.Fatalf("-format %s needs -out", kind)
	}

	if *xlsxPath != "" {
		f, err := os.Create(*xlsxPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := stats.WriteXLSX(f, table, sel, lookup); err != nil {
			f.Close()
			log.Fatalf("write %s: %v", *xlsxPath, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", *xlsxPath)
	}
}

func fetch(ctx context.Context, cfg config.Config, sel stats.Selection, verbose bool) (stats.Table, stats.Lookup) {
	client := cfg.Client()
	client.Verbose = verbose

	session := stats.NewSession()
	session.Select(sel)
	if _, err := session.SetMetric(cfg.Metric); err != nil {
		log.Fatalf("%v", err)
	}

	regions, err := client.FetchRegions(ctx)
	if err != nil {
		log.Printf("warning: could not load prefecture names, using placeholders: %v", err)
	} else {
		session.SetRegions(regions)
	}

	res, _, err := session.Refresh(ctx, client, stats.Options{Policy: cfg.Policy})
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, w := range res.Warnings() {
		log.Printf("warning: %s", w)
	}
	return session.Table(), session.Lookup()
}

func writeImage(path, kind, fontPath string, width, height int, palette []string, t stats.Table, sel stats.Selection, lookup stats.Lookup) error {
	format, err := chart.ParseFormat(kind)
	if err != nil {
		return err
	}
	opts := chart.Options{Format: format, Width: width, Height: height, Palette: palette}
	if fontPath != "" {
		if opts.Font, err = chart.LoadFont(fontPath); err != nil {
			return fmt.Errorf("font %s: %w", fontPath, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := chart.Render(w, t, sel, lookup, opts); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
