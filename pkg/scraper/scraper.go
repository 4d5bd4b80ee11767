package scraper

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/queue"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

const maxNumRetries int = 5

// OfferCallbackFunc receives every offer record extracted from a product
// page, in page order.
type OfferCallbackFunc func(o extract.Offer)

var defaultStartURLs = []string{
	"https://www.prisjakt.nu/c/moderkort",
	"https://www.prisjakt.nu/c/grafikkort",
}

var defaultURLFilters = []*regexp.Regexp{
	regexp.MustCompile(`https://www\.prisjakt\.nu/c/.*`),
	regexp.MustCompile(`https://www\.prisjakt\.nu/produkt\.php\?p=.*`),
}

// NewScraper builds a crawler over category listing pages and the product
// pages they link to. Every extracted offer is handed to callback.
func NewScraper(cfg Config, callback OfferCallbackFunc) Scraper {
	if cfg.Threads <= 0 {
		cfg.Threads = 8
	}
	if cfg.Delay == 0 {
		cfg.Delay = 300 * time.Millisecond
	}
	if cfg.RandomDelay == 0 {
		cfg.RandomDelay = time.Second
	}
	if len(cfg.StartURLs) == 0 {
		cfg.StartURLs = defaultStartURLs
	}
	if cfg.AllowedDomains == nil {
		cfg.AllowedDomains = []string{"www.prisjakt.nu"}
	}
	if cfg.URLFilters == nil {
		cfg.URLFilters = defaultURLFilters
	}

	options := []colly.CollectorOption{
		colly.AllowedDomains(cfg.AllowedDomains...),
		colly.URLFilters(cfg.URLFilters...),
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
	}

	if cfg.CacheDir != "" {
		options = append(options, colly.CacheDir(cfg.CacheDir))
	}

	var storage queue.Storage = &queue.InMemoryQueueStorage{MaxSize: 10000}
	if cfg.DepthFirst {
		storage = &StackQueueStorage{}
	}
	// neither storage backend can fail Init
	q, _ := queue.New(cfg.Threads, storage)

	s := Scraper{
		colly:       colly.NewCollector(options...),
		q:           q,
		timestamp:   time.Now().Format("2006-01-02 15:04:05"),
		startURLs:   cfg.StartURLs,
		callback:    callback,
		mutex:       &sync.Mutex{},
		urlBackoffs: make(map[string]int),
		categories:  make(map[string]string),
	}

	// cookies caused the wrong response body to be matched with a request
	// under parallelism; the site works fine without them
	s.colly.DisableCookies()

	s.colly.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Threads,
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	})

	s.colly.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "sv-SE,sv;q=0.9,en-US;q=0.8,nl;q=0.7")
	})

	s.colly.OnError(func(r *colly.Response, err error) {
		// exponential backoff
		s.mutex.Lock()
		s.urlBackoffs[r.Request.URL.String()]++
		numRetries := s.urlBackoffs[r.Request.URL.String()]
		s.mutex.Unlock()

		if numRetries > maxNumRetries {
			// a dead page costs us its offers, never the crawl
			log.Printf("giving up on %q after %d retries: %v\n", r.Request.URL.String(), maxNumRetries, err)
			return
		}

		duration := time.Duration(math.Pow(2, float64(numRetries))) * time.Second
		fmt.Fprintf(os.Stderr, "ERROR: Request %q [%d] failed, retrying after %.0f s: %v\n", r.Request.URL.String(), r.StatusCode, duration.Seconds(), err)
		time.Sleep(duration)
		if err := r.Request.Retry(); err != nil {
			fmt.Fprintln(os.Stderr, "ERROR while retrying:", err)
		}
	})

	s.colly.OnHTML("html", func(e *colly.HTMLElement) {
		switch {
		case strings.Contains(e.Request.URL.Path, "/produkt.php"):
			s.handleProductPage(e)
		case strings.Contains(e.Request.URL.Path, "/c/"):
			s.handleListingPage(e)
		}
	})

	return s
}

// Start seeds the queue with the configured category pages and blocks
// until the crawl drains.
func (s Scraper) Start() error {
	for _, u := range s.startURLs {
		if err := s.visit(u); err != nil && !errors.Is(err, colly.ErrAlreadyVisited) {
			return err
		}
	}

	if err := s.q.Run(s.colly); err != nil {
		return err
	}

	s.colly.Wait()

	return nil
}

// handleListingPage schedules every product link on a category listing
// page, then at most one next listing page.
func (s Scraper) handleListingPage(e *colly.HTMLElement) {
	currentURL := e.Request.URL.String()
	category := ResolveCategory(currentURL)

	links := make(map[string]struct{})
	e.DOM.Find(`a[href^="/produkt.php?p="]`).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			links[href] = struct{}{}
		}
	})

	// deduplicated and sorted so a page always schedules the same fetches
	sorted := make([]string, 0, len(links))
	for href := range links {
		sorted = append(sorted, href)
	}
	sort.Strings(sorted)

	for _, href := range sorted {
		link := e.Request.AbsoluteURL(href)
		s.setCategory(link, category)
		if err := s.visit(link); err != nil && !isExpectedVisitErr(err) {
			fmt.Fprintln(os.Stderr, "ERROR", err, link)
		}
	}

	next := s.nextListingPage(e)
	if next == "" || next == currentURL {
		// no further page, or a self-link that would loop forever
		return
	}
	if err := s.visit(next); err != nil && !isExpectedVisitErr(err) {
		fmt.Fprintln(os.Stderr, "ERROR", err, next)
	}
}

// nextListingPage picks the single follow-up listing page: an explicit
// "next" pagination control when present, otherwise the last numbered
// pagination link as a best guess.
func (s Scraper) nextListingPage(e *colly.HTMLElement) string {
	if href, ok := e.DOM.Find(`a[data-test="PaginationNavigation-next"]`).First().Attr("href"); ok {
		return e.Request.AbsoluteURL(href)
	}
	pages := e.DOM.Find(`a[data-test="PaginationLink"]`)
	if href, ok := pages.Last().Attr("href"); ok {
		return e.Request.AbsoluteURL(href)
	}
	return ""
}

// handleProductPage runs the extraction core over a fetched product page
// and streams the records out.
func (s Scraper) handleProductPage(e *colly.HTMLElement) {
	pageURL := e.Request.URL.String()
	offers := extract.Offers(e.DOM, pageURL, extract.PageContext{
		Timestamp: s.timestamp,
		Category:  s.categoryFor(pageURL),
	})
	for _, o := range offers {
		s.callback(o)
	}
}

func (s Scraper) visit(rawURL string) error {
	if visited, err := s.colly.HasVisited(rawURL); err != nil {
		return err
	} else if visited {
		return colly.ErrAlreadyVisited
	}

	for _, f := range s.colly.URLFilters {
		if f.MatchString(rawURL) {
			return s.q.AddURL(rawURL)
		}
	}
	return colly.ErrNoURLFiltersMatch
}

func isExpectedVisitErr(err error) bool {
	return errors.Is(err, colly.ErrAlreadyVisited) ||
		errors.Is(err, colly.ErrNoURLFiltersMatch) ||
		errors.Is(err, colly.ErrMissingURL)
}

func (s Scraper) setCategory(productURL, category string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.categories[normalizeURLKey(productURL)] = category
}

func (s Scraper) categoryFor(productURL string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.categories[normalizeURLKey(productURL)]
}

// normalizeURLKey makes scheduled and fetched URLs comparable; colly may
// hand back the URL with the fragment stripped or the host lowercased.
func normalizeURLKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
