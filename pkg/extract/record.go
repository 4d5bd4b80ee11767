package extract

import (
	"fmt"
	"strings"
)

// Source tags identifying which extraction strategy produced an offer.
const (
	SourceHTML         = "html"
	SourceJSONLD       = "jsonld"
	SourceEmbeddedJSON = "embedded_json"
)

// Offer is one seller/price observation tied to one product page.
// The same real-world offer may legitimately appear more than once with
// different Source tags; reconciling across sources is the consumer's job.
type Offer struct {
	Timestamp     string   `json:"timestamp"`
	Category      string   `json:"category"`
	ProductID     string   `json:"product_id"`
	ProductTitle  string   `json:"product_title"`
	ProductURL    string   `json:"product_url"`
	SellerName    string   `json:"seller_name,omitempty"`
	PriceValue    *float64 `json:"price_value,omitempty"`
	PriceCurrency string   `json:"price_currency,omitempty"`
	PriceRaw      string   `json:"price_raw,omitempty"`
	Source        string   `json:"source"`
}

// Validate reports whether the offer carries the fields required at the
// sink boundary.
func (o Offer) Validate() error {
	var missing []string
	if o.ProductID == "" {
		missing = append(missing, "product_id")
	}
	if o.ProductTitle == "" {
		missing = append(missing, "product_title")
	}
	if o.ProductURL == "" {
		missing = append(missing, "product_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("offer missing %s", strings.Join(missing, ", "))
	}
	return nil
}
