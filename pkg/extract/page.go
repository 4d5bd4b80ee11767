package extract

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// PageContext carries the per-crawl constants stamped onto every offer
// extracted from a product page.
type PageContext struct {
	// Timestamp is fixed once per crawl run, not per record.
	Timestamp string
	// Category is the resolved listing category the page was reached from.
	Category string
}

// pageInfo is the PageContext plus the per-page constants shared by all
// records from one product page.
type pageInfo struct {
	PageContext
	ProductID string
	Title     string
	URL       string
}

func (p pageInfo) offer(source, seller string, value *float64, currency, raw string) Offer {
	return Offer{
		Timestamp:     p.Timestamp,
		Category:      p.Category,
		ProductID:     p.ProductID,
		ProductTitle:  p.Title,
		ProductURL:    p.URL,
		SellerName:    seller,
		PriceValue:    value,
		PriceCurrency: currency,
		PriceRaw:      raw,
		Source:        source,
	}
}

// Offers runs the three extraction strategies against one fetched product
// page, in a fixed order, and returns their concatenated output. The
// product id comes from the URL's "p" query parameter, the title from the
// page's first heading. Arbitrary or partial markup yields fewer (possibly
// zero) records, never an error.
func Offers(page *goquery.Selection, pageURL string, ctx PageContext) []Offer {
	p := pageInfo{PageContext: ctx, URL: pageURL}
	if u, err := url.Parse(pageURL); err == nil {
		p.ProductID = u.Query().Get("p")
	}
	p.Title = NormWS(page.Find("h1").First().Text())

	var out []Offer
	out = append(out, offersFromHTML(page, p)...)
	out = append(out, offersFromJSONLD(page, p)...)
	out = append(out, offersFromEmbeddedJSON(page, p)...)
	return out
}

// asOfferList normalizes an "offers" field that can hold a single object
// or a list of objects.
func asOfferList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return nil
	}
}

// asString renders a scalar JSON value the way it appeared on the page so
// it can go through ParsePrice.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
