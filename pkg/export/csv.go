package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

// CSVWriter writes offer records to a CSV file. Safe for concurrent use;
// the crawl delivers records from parallel fetch workers.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the file at path and writes the
// header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

func (c *CSVWriter) Write(o extract.Offer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(offerRow(o)); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return err
	}
	return c.file.Close()
}

func offerRow(o extract.Offer) []string {
	return []string{
		o.Timestamp,
		o.Category,
		o.ProductID,
		o.ProductTitle,
		o.ProductURL,
		o.SellerName,
		formatPrice(o.PriceValue),
		o.PriceCurrency,
		o.PriceRaw,
		o.Source,
	}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
