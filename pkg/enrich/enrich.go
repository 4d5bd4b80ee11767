package enrich

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/logger"
)

// Enricher appends an EAN column to exported offer files by looking up
// product titles in the remote catalog. Lookups are cached for the run so
// each distinct title hits the network once; the cache dies with the run.
type Enricher struct {
	client *Client
	cache  map[string]string
	delay  time.Duration
	log    *logger.Logger
}

// NewEnricher builds an enricher with the given politeness delay between
// remote lookups. Enrichment runs single-threaded.
func NewEnricher(client *Client, delay time.Duration, log *logger.Logger) *Enricher {
	return &Enricher{
		client: client,
		cache:  make(map[string]string),
		delay:  delay,
		log:    log,
	}
}

// LookupEAN resolves a product title to an EAN, or "" when the lookup
// fails for any reason. Failures are logged, never returned; a missing
// identifier must not stop the batch.
func (e *Enricher) LookupEAN(title string) string {
	if title == "" {
		return ""
	}
	if ean, ok := e.cache[title]; ok {
		return ean
	}

	ean := e.lookup(title)
	e.cache[title] = ean
	return ean
}

func (e *Enricher) lookup(title string) string {
	if e.delay > 0 {
		defer time.Sleep(e.delay)
	}

	id, err := e.client.SearchProductID(title)
	if err != nil {
		e.log.Warn("[enrich] search failed for %q: %v", title, err)
		return ""
	}
	if id == "" {
		return ""
	}

	ean, err := e.client.FetchEAN(id)
	if err != nil {
		e.log.Warn("[enrich] detail fetch failed for %q (id %s): %v", title, id, err)
		return ""
	}
	return ean
}

// EnrichFile streams the CSV at inPath to outPath with an "ean" column
// appended. The input must carry a product_title column.
func (e *Enricher) EnrichFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	writer := csv.NewWriter(out)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("enrich: read header: %w", err)
	}

	titleCol := -1
	for i, name := range header {
		if name == "product_title" {
			titleCol = i
			break
		}
	}
	if titleCol < 0 {
		return fmt.Errorf("enrich: %q has no product_title column", inPath)
	}

	if err := writer.Write(append(header, "ean")); err != nil {
		return fmt.Errorf("enrich: write header: %w", err)
	}

	rows := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("enrich: read row: %w", err)
		}

		title := row[titleCol]
		ean := e.LookupEAN(title)
		if err := writer.Write(append(row, ean)); err != nil {
			return fmt.Errorf("enrich: write row: %w", err)
		}

		rows++
		e.log.Info("[enrich] %s -> EAN: %s", title, ean)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("enrich: flush: %w", err)
	}

	e.log.Info("[enrich] wrote %d rows to %s", rows, outPath)
	return nil
}
