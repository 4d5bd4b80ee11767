package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

const sheetName = "Sheet1"

// XLSXWriter accumulates offer records in a workbook and saves it on
// Close. Safe for concurrent use.
type XLSXWriter struct {
	mu   sync.Mutex
	file *excelize.File
	path string
	row  int
}

func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetRow(sheetName, "A1", &[]any{
		header[0], header[1], header[2], header[3], header[4],
		header[5], header[6], header[7], header[8], header[9],
	}); err != nil {
		return nil, fmt.Errorf("xlsx: write header: %w", err)
	}

	return &XLSXWriter{file: f, path: path, row: 1}, nil
}

func (x *XLSXWriter) Write(o extract.Offer) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", x.row, err)
	}

	// price stays numeric when present so the spreadsheet can aggregate it
	var price any
	if o.PriceValue != nil {
		price = *o.PriceValue
	} else {
		price = ""
	}

	row := []any{
		o.Timestamp,
		o.Category,
		o.ProductID,
		o.ProductTitle,
		o.ProductURL,
		o.SellerName,
		price,
		o.PriceCurrency,
		o.PriceRaw,
		o.Source,
	}
	if err := x.file.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", x.row, err)
	}
	return nil
}

// Close saves the workbook to disk.
func (x *XLSXWriter) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return x.file.Close()
}

// DatedFilename builds the conventional export filename, e.g.
// "prisjakt_products_2024-03-01.xlsx".
func DatedFilename(name, ext string, t time.Time) string {
	return fmt.Sprintf("%s_products_%s.%s", name, t.Format("2006-01-02"), ext)
}
