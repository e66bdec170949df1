package main

import (
	"flag"
	"log"
	"net/http"
	"net/url"

	"github.com/anrid/japan-population/pkg/devproxy"
	"github.com/anrid/japan-population/pkg/resas"
)

func main() {
	log.SetPrefix("devproxy: ")

	var (
		addr   = flag.String("addr", "127.0.0.1:3001", "listen address")
		target = flag.String("target", resas.DefaultBaseURL, "API origin to forward to")
		prefix = flag.String("prefix", devproxy.DefaultPrefix, "local path prefix to strip")
	)
	flag.Parse()

	u, err := url.Parse(*target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		log.Fatalf("bad -target %q", *target)
	}

	log.Printf("forwarding http://%s%s/* to %s", *addr, *prefix, u)
	log.Printf("point clients at RESAS_BASE_URL=http://%s%s", *addr, *prefix)
	if err := http.ListenAndServe(*addr, devproxy.New(u, *prefix)); err != nil {
		log.Fatal(err)
	}
}
