package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Class names on the site are hashed and change between deployments;
// substring matching on the semantic fragments ("Offer", "Store", "Price")
// outlives exact selectors.
const offerRowSelector = `[class*="Offer"], [data-test*="Offer"], [data-test*="StoreRow"]`

func offersFromHTML(page *goquery.Selection, p pageInfo) []Offer {
	var out []Offer
	page.Find(offerRowSelector).Each(func(_ int, row *goquery.Selection) {
		var sellerParts []string
		row.Find(`[data-test*="Store"]`).Each(func(_ int, s *goquery.Selection) {
			sellerParts = append(sellerParts, s.Text())
		})
		row.Find(`a[title]`).Each(func(_ int, s *goquery.Selection) {
			sellerParts = append(sellerParts, s.AttrOr("title", ""))
		})
		row.Find(`img[alt]`).Each(func(_ int, s *goquery.Selection) {
			sellerParts = append(sellerParts, s.AttrOr("alt", ""))
		})
		row.Find(`a`).Each(func(_ int, s *goquery.Selection) {
			sellerParts = append(sellerParts, s.Text())
		})
		seller := NormWS(strings.Join(sellerParts, " "))

		var priceParts []string
		row.Find(`[data-test*="Price"], [class*="Price"]`).Each(func(_ int, s *goquery.Selection) {
			priceParts = append(priceParts, s.Text())
		})
		priceText := NormWS(strings.Join(priceParts, " "))

		if seller == "" && priceText == "" {
			return
		}

		value, currency, raw := ParsePrice(priceText)
		out = append(out, p.offer(SourceHTML, seller, value, currency, raw))
	})
	return out
}
