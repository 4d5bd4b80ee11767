package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

func newTestScraper(startURL string, threads int, depthFirst bool, cb OfferCallbackFunc) Scraper {
	return NewScraper(Config{
		Threads:     threads,
		Delay:       time.Millisecond,
		RandomDelay: time.Millisecond,
		DepthFirst:  depthFirst,
		StartURLs:   []string{startURL},
		// empty but non-nil: allow the test server's host
		AllowedDomains: []string{},
		URLFilters: []*regexp.Regexp{
			regexp.MustCompile(`/c/`),
			regexp.MustCompile(`/produkt\.php`),
		},
	}, cb)
}

// pageCounter records how often each path+query was served.
type pageCounter struct {
	mu     sync.Mutex
	visits map[string]int
}

func (p *pageCounter) count(r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visits == nil {
		p.visits = make(map[string]int)
	}
	p.visits[r.URL.RequestURI()]++
}

func newTestServer(counter *pageCounter) *httptest.Server {
	mux := http.NewServeMux()

	productPage := func(title, seller, price string) string {
		return fmt.Sprintf(`<!DOCTYPE html>
<html lang="sv">
<head>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"price": "%[3]s", "seller": {"name": "%[2]s"}}}
	</script>
</head>
<body>
	<h1>%[1]s</h1>
	<div data-test="StoreRow-0">
		<a title="%[2]s"></a>
		<span class="PriceLabel-1">%[3]s</span>
	</div>
</body>
</html>`, title, seller, price)
	}

	mux.HandleFunc("/c/moderkort", func(w http.ResponseWriter, r *http.Request) {
		counter.count(r)
		w.Header().Set("Content-Type", "text/html")

		if r.URL.Query().Get("page") == "2" {
			// last page: no next control, and the numbered links end on
			// this very page
			fmt.Fprint(w, `<!DOCTYPE html>
<html><body>
	<a href="/produkt.php?p=3">Product C</a>
	<a data-test="PaginationLink" href="/c/moderkort">1</a>
	<a data-test="PaginationLink" href="/c/moderkort?page=2">2</a>
</body></html>`)
			return
		}

		fmt.Fprint(w, `<!DOCTYPE html>
<html><body>
	<a href="/produkt.php?p=1">Product A</a>
	<a href="/produkt.php?p=2">Product B</a>
	<a href="/produkt.php?p=1">Product A again</a>
	<a data-test="PaginationNavigation-next" href="/c/moderkort?page=2">Next</a>
</body></html>`)
	})

	mux.HandleFunc("/produkt.php", func(w http.ResponseWriter, r *http.Request) {
		counter.count(r)
		w.Header().Set("Content-Type", "text/html")

		id := r.URL.Query().Get("p")
		fmt.Fprint(w, productPage("Product "+id, "Store "+id, "1 29"+id+" kr"))
	})

	return httptest.NewServer(mux)
}

func TestScraperCrawlsAllListingPages(t *testing.T) {
	counter := &pageCounter{}
	ts := newTestServer(counter)
	defer ts.Close()

	m := sync.Mutex{}
	var scraped []extract.Offer
	s := newTestScraper(ts.URL+"/c/moderkort", 4, false, func(o extract.Offer) {
		m.Lock()
		scraped = append(scraped, o)
		m.Unlock()
	})

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	// 3 distinct products, each yielding one html and one jsonld record
	if len(scraped) != 6 {
		t.Fatalf("got %d records, want 6", len(scraped))
	}

	bySource := map[string]int{}
	ids := map[string]bool{}
	for _, o := range scraped {
		bySource[o.Source]++
		ids[o.ProductID] = true
		if o.Category != "Motherboards" {
			t.Errorf("category = %q, want Motherboards", o.Category)
		}
		if o.ProductTitle != "Product "+o.ProductID {
			t.Errorf("title = %q for product %s", o.ProductTitle, o.ProductID)
		}
	}
	if bySource[extract.SourceHTML] != 3 || bySource[extract.SourceJSONLD] != 3 {
		t.Errorf("records by source = %v, want 3 html + 3 jsonld", bySource)
	}
	for _, id := range []string{"1", "2", "3"} {
		if !ids[id] {
			t.Errorf("product %s never scraped", id)
		}
	}
}

func TestScraperStopsOnSelfReferencingPagination(t *testing.T) {
	counter := &pageCounter{}
	ts := newTestServer(counter)
	defer ts.Close()

	s := newTestScraper(ts.URL+"/c/moderkort", 2, false, func(o extract.Offer) {})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	// page 2's best-guess candidate is page 2 itself; the branch must end
	// there instead of refetching
	counter.mu.Lock()
	defer counter.mu.Unlock()
	if n := counter.visits["/c/moderkort?page=2"]; n != 1 {
		t.Errorf("last listing page fetched %d times, want 1", n)
	}
	if n := counter.visits["/c/moderkort"]; n != 1 {
		t.Errorf("first listing page fetched %d times, want 1", n)
	}
}

func TestScraperDepthFirst(t *testing.T) {
	counter := &pageCounter{}
	ts := newTestServer(counter)
	defer ts.Close()

	m := sync.Mutex{}
	var scraped []extract.Offer
	s := newTestScraper(ts.URL+"/c/moderkort", 1, true, func(o extract.Offer) {
		m.Lock()
		scraped = append(scraped, o)
		m.Unlock()
	})

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if len(scraped) != 6 {
		t.Fatalf("got %d records, want 6", len(scraped))
	}
}

func TestScraperTimestampConstantAcrossRun(t *testing.T) {
	counter := &pageCounter{}
	ts := newTestServer(counter)
	defer ts.Close()

	m := sync.Mutex{}
	stamps := map[string]bool{}
	s := newTestScraper(ts.URL+"/c/moderkort", 4, false, func(o extract.Offer) {
		m.Lock()
		stamps[o.Timestamp] = true
		m.Unlock()
	})

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if len(stamps) != 1 {
		t.Errorf("got %d distinct timestamps, want 1", len(stamps))
	}
}
