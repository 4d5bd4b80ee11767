package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/config"
	"github.com/lourens/prisjakt-offers/pkg/export"
	"github.com/lourens/prisjakt-offers/pkg/web"
)

func main() {
	dataDirArg := flag.String("data", "./data", "directory holding exported offer files")
	addrArg := flag.String("addr", "localhost:8080", "listen address")

	flag.Parse()

	cfg := config.Load()

	http.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		path, err := export.LatestExport(*dataDirArg, cfg.CrawlName)
		if err != nil {
			log.Println(err)
			http.Error(rw, "no exports found", http.StatusNotFound)
			return
		}

		offers, err := export.ReadOffersCSV(path)
		if err != nil {
			log.Println(err)
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		if err := web.RenderOffers(rw, web.OffersContext{
			Title:       "Prisjakt offers",
			SourceFile:  path,
			GeneratedAt: time.Now(),
			Offers:      offers,
		}); err != nil {
			log.Println(err)
		}
	})

	log.Println("serving on http://" + *addrArg)
	log.Fatal(http.ListenAndServe(*addrArg, nil))
}
