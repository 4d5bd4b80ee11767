package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parsePage(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc.Selection
}

func testPageInfo() pageInfo {
	return pageInfo{
		PageContext: PageContext{
			Timestamp: "2024-03-01 10:00:00",
			Category:  "Motherboards",
		},
		ProductID: "123456",
		Title:     "ASUS Prime B650-PLUS",
		URL:       "https://www.prisjakt.nu/produkt.php?p=123456",
	}
}
