package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"proxographer/api"
	"proxographer/config"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"proxographer",
		"Finds proxies geographically close to a given place.")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("PROXOGRAPHER_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("PROXOGRAPHER_CONFIG").
			File()
	listen = app.Flag("listen", "Serve an HTTP API on this host:port instead of a one-shot run.").
		Envar("PROXOGRAPHER_LISTEN").
		String()
	limit = app.Flag("limit", "Print at most this number of proxies.").
		Short('n').
		Default("10").
		Int()
	place = app.Arg("place", "Place to rank proxies against, e.g. a country name.").
		String()
)

func init() {
	app.Version(version)
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.WarnLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf := &config.Config{}

	if *configFile != nil {
		parsed, err := config.Parse(*configFile)
		if err != nil {
			log.Fatalf(err.Error())
		}

		conf = parsed
	}

	loc, err := makeLocator(conf)
	if err != nil {
		log.Fatalf(err.Error())
	}

	addr := conf.GetListen()
	if *listen != "" {
		addr = *listen
	}

	if addr != "" {
		fmt.Println("Listening on " + addr)

		if err := http.ListenAndServe(addr, api.MakeServer(loc)); err != nil {
			log.Fatalf(err.Error())
		}

		return
	}

	if *place == "" {
		kingpin.Fatalf("a place argument is required in one-shot mode")
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	if err := loc.Cycle(ctx); err != nil {
		// the cycle has already explained itself in the log
		os.Exit(1)
	}

	ranked, err := loc.Closest(ctx, *place)
	if err != nil {
		log.Fatalf(err.Error())
	}

	if *limit > 0 && len(ranked) > *limit {
		ranked = ranked[:*limit]
	}

	output, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		log.Fatalf(err.Error())
	}

	fmt.Println(string(output))
}
