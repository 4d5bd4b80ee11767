package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// offersFromJSONLD reads every linked-data script block on the page.
// Broken blocks are common in the wild and are skipped, not reported.
func offersFromJSONLD(page *goquery.Selection, p pageInfo) []Offer {
	var out []Offer
	page.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return
		}
		out = append(out, offersFromLDValue(data, p)...)
	})
	return out
}

// offersFromLDValue walks a parsed linked-data value. Lists are flattened
// by recursing on each element; anything that is not an object is ignored.
func offersFromLDValue(data any, p pageInfo) []Offer {
	switch v := data.(type) {
	case []any:
		var out []Offer
		for _, item := range v {
			out = append(out, offersFromLDValue(item, p)...)
		}
		return out
	case map[string]any:
		typ, _ := v["@type"].(string)
		_, hasOffers := v["offers"]
		if typ != "Product" && typ != "AggregateOffer" && typ != "Offer" && !hasOffers {
			return nil
		}

		var out []Offer
		for _, item := range asOfferList(v["offers"]) {
			off, ok := item.(map[string]any)
			if !ok {
				continue
			}

			var seller string
			switch s := off["seller"].(type) {
			case map[string]any:
				seller, _ = s["name"].(string)
			case string:
				seller = s
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
			out = append(out, p.offer(SourceJSONLD, seller, value, currency, raw))
		}
		return out
	default:
		return nil
	}
}
