package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

// ReadOffersCSV reads a file previously written by CSVWriter back into
// offer records.
func ReadOffersCSV(path string) ([]extract.Offer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var offers []extract.Offer
	for _, row := range rows[1:] {
		o := extract.Offer{
			Timestamp:     field(row, "timestamp"),
			Category:      field(row, "category"),
			ProductID:     field(row, "product_id"),
			ProductTitle:  field(row, "product_title"),
			ProductURL:    field(row, "product_url"),
			SellerName:    field(row, "seller_name"),
			PriceCurrency: field(row, "price_currency"),
			PriceRaw:      field(row, "price_raw"),
			Source:        field(row, "source"),
		}
		if s := field(row, "price_value"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				o.PriceValue = &v
			}
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// LatestExport returns the lexically greatest CSV file in dir matching the
// dated export naming, which is also the most recent one.
func LatestExport(dir, name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, name+"_products_*.csv"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no exports matching %q in %q", name, dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
