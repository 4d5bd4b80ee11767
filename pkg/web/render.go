package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

//go:embed templates
var templatesFs embed.FS

// OffersContext feeds the offers table template.
type OffersContext struct {
	Title       string
	SourceFile  string
	GeneratedAt time.Time
	Offers      []extract.Offer
}

func (c OffersContext) FormattedGeneratedAt() string {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		loc = time.UTC
	}
	return c.GeneratedAt.In(loc).Format("2006-01-02T15:04:05 MST")
}

// RenderOffers writes the offers table page.
func RenderOffers(w io.Writer, c OffersContext) error {
	t, err := template.ParseFS(templatesFs, "templates/offers.html.tpl")
	if err != nil {
		return err
	}
	return t.Execute(w, c)
}
