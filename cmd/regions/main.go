package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/anrid/japan-population/pkg/config"
	"github.com/davecgh/go-spew/spew"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("regions: ")

	var (
		dump       = flag.Bool("dump", false, "dump the parsed region list")
		initConfig = flag.Bool("init-config", false, "write the current settings to "+config.Path())
	)
	flag.Parse()

	cfg := config.Load()
	if *initConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", config.Path())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	regions, err := cfg.Client().FetchRegions(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *dump {
		spew.Dump(regions)
		return
	}
	for _, r := range regions {
		fmt.Printf("%2d  %s\n", r.Code, r.Name)
	}
}
