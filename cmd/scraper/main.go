package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/config"
	"github.com/lourens/prisjakt-offers/pkg/export"
	"github.com/lourens/prisjakt-offers/pkg/extract"
	"github.com/lourens/prisjakt-offers/pkg/logger"
	"github.com/lourens/prisjakt-offers/pkg/scraper"
)

func main() {
	dirNameArg := flag.String("dir", "./data", "directory in which to write exported offer files")
	cacheDirArg := flag.String("cache", "", "cache directory")
	threadsArg := flag.Int("threads", 0, "parallel fetches (0 = from env/default)")
	depthFirstArg := flag.Bool("depth-first", false, "finish each category's pagination chain before starting the next")
	noUploadArg := flag.Bool("no-upload", false, "skip the Drive upload even when a token is configured")
	startURLsArg := flag.String("start", "", "comma-separated category listing URLs overriding the defaults")

	flag.Parse()

	log := logger.New()
	cfg := config.Load()

	threads := cfg.Threads
	if *threadsArg > 0 {
		threads = *threadsArg
	}

	if err := os.MkdirAll(*dirNameArg, os.ModeDir|0755); err != nil {
		log.Error("create %q: %v", *dirNameArg, err)
		os.Exit(1)
	}

	runDate := time.Now()
	csvPath := filepath.Join(*dirNameArg, export.DatedFilename(cfg.CrawlName, "csv", runDate))
	xlsxPath := filepath.Join(*dirNameArg, export.DatedFilename(cfg.CrawlName, "xlsx", runDate))

	csvSink, err := export.NewCSVWriter(csvPath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	xlsxSink, err := export.NewXLSXWriter(xlsxPath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	sink := export.NewGate(export.NewMultiSink(csvSink, xlsxSink), log)

	scraperCfg := scraper.Config{
		CacheDir:    *cacheDirArg,
		Threads:     threads,
		Delay:       time.Duration(cfg.DelayMs) * time.Millisecond,
		RandomDelay: time.Duration(cfg.RandomDelayMs) * time.Millisecond,
		DepthFirst:  *depthFirstArg,
	}
	if *startURLsArg != "" {
		scraperCfg.StartURLs = strings.Split(*startURLsArg, ",")
	}

	// records arrive from parallel fetch workers
	var records atomic.Int64
	s := scraper.NewScraper(scraperCfg, func(o extract.Offer) {
		if err := sink.Write(o); err != nil {
			log.Error("[sink] %v", err)
			return
		}
		records.Add(1)
	})

	if err := s.Start(); err != nil {
		log.Error("crawl failed to start: %v", err)
		os.Exit(1)
	}

	if err := sink.Close(); err != nil {
		log.Error("closing sinks: %v", err)
		os.Exit(1)
	}
	log.Info("exported %d records to %s and %s", records.Load(), csvPath, xlsxPath)

	if *noUploadArg || cfg.DriveTokenPath == "" {
		return
	}

	// the exported files stay on disk whatever happens here
	uploader := export.NewDriveUploader(cfg.DriveTokenPath, cfg.DriveFolder)
	if err := uploader.Upload(xlsxPath); err != nil {
		log.Error("[upload] %v", err)
		return
	}
	log.Info("uploaded %s to Drive folder %q", filepath.Base(xlsxPath), cfg.DriveFolder)
}
