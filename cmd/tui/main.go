package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anrid/japan-population/pkg/config"
	"github.com/anrid/japan-population/pkg/stats"
	"github.com/anrid/japan-population/pkg/tui"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tui: ")

	cfg := config.Load()

	var (
		prefs  = flag.String("pref", "", "prefecture codes to start with, e.g. 1,13")
		metric = flag.String("metric", cfg.Metric.String(), "total, youth, working-age or elderly")
		strict = flag.Bool("strict", cfg.Policy == stats.PolicyStrict, "fail the chart when any prefecture cannot be fetched")
		debug  = flag.String("debug", "", "write log output to this file")
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
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	sel, err := stats.ParseSelection(*prefs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *debug != "" {
		f, err := tea.LogToFile(*debug, "tui")
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	session := stats.NewSession()
	session.Select(sel)
	if _, err := session.SetMetric(cfg.Metric); err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, cfg.Client(), session, stats.Options{Policy: cfg.Policy}, cfg.Palette)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("%v", err)
	}
}
