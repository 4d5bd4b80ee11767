package scraper

import (
	"regexp"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/queue"
)

// Config tunes the crawl. Zero values fall back to sane defaults for the
// live site.
type Config struct {
	// CacheDir can be empty to disable response caching.
	CacheDir string
	Threads  int
	// Delay and RandomDelay approximate the original polite throttling:
	// every request waits Delay plus up to RandomDelay extra.
	Delay       time.Duration
	RandomDelay time.Duration
	// DepthFirst crawls category pagination chains to the end before
	// starting the next category.
	DepthFirst bool
	// StartURLs override the default category listing pages.
	StartURLs []string
	// AllowedDomains and URLFilters override the live-site defaults
	// (used by tests to point the crawler at a local server).
	AllowedDomains []string
	URLFilters     []*regexp.Regexp
}

type Scraper struct {
	colly *colly.Collector
	q     *queue.Queue

	timestamp string
	startURLs []string
	callback  OfferCallbackFunc

	mutex       *sync.Mutex
	urlBackoffs map[string]int
	// resolved category label per scheduled product URL; queue scheduling
	// does not carry request context, so labels ride alongside.
	categories map[string]string
}
