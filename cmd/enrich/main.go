package main

import (
	"flag"
	"os"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/config"
	"github.com/lourens/prisjakt-offers/pkg/enrich"
	"github.com/lourens/prisjakt-offers/pkg/logger"
)

func main() {
	inArg := flag.String("in", "prisjakt_offers.csv", "input CSV with a product_title column")
	outArg := flag.String("out", "prisjakt_offers_with_ean.csv", "output CSV with the ean column appended")

	flag.Parse()

	log := logger.New()
	cfg := config.Load()

	if cfg.IcecatUser == "" || cfg.IcecatPass == "" {
		log.Error("ICECAT_USER and ICECAT_PASS must be set")
		os.Exit(1)
	}

	client := enrich.NewClient(cfg.IcecatUser, cfg.IcecatPass, cfg.IcecatLang)
	e := enrich.NewEnricher(client, time.Duration(cfg.EnrichDelayMs)*time.Millisecond, log)

	if err := e.EnrichFile(*inArg, *outArg); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
