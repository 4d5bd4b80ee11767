package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// braceRegex matches from a "{" to the first following "}" across lines.
// The matching is intentionally shallow: it targets flat ad-hoc object
// literals inside scripts, not arbitrary JSON. Nested braces produce
// garbled fragments that fail to parse and are dropped silently.
var braceRegex = regexp.MustCompile(`(?s)\{.*?\}`)

// offersFromEmbeddedJSON scans every inline script, whatever its declared
// type, for offer-shaped object literals.
func offersFromEmbeddedJSON(page *goquery.Selection, p pageInfo) []Offer {
	var out []Offer
	page.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "offer") && !strings.Contains(lower, "price") {
			return
		}

		for _, fragment := range braceRegex.FindAllString(text, -1) {
			var obj map[string]any
			if err := json.Unmarshal([]byte(fragment), &obj); err != nil {
				continue
			}

			for _, item := range asOfferList(obj["offers"]) {
				off, ok := item.(map[string]any)
				if !ok {
					continue
				}

				seller, _ := off["store"].(string)
				if seller == "" {
					seller, _ = off["seller"].(string)
				}
				seller = NormWS(seller)

				value, currency, raw := ParsePrice(asString(off["price"]))
				if currency == "" {
					if pc, ok := off["priceCurrency"].(string); ok {
						currency = strings.ToUpper(pc)
					}
				}

				if seller == "" && raw == "" {
					continue
				}
				out = append(out, p.offer(SourceEmbeddedJSON, seller, value, currency, raw))
			}
		}
	})
	return out
}
