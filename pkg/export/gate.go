package export

import (
	"sync/atomic"

	"github.com/lourens/prisjakt-offers/pkg/extract"
	"github.com/lourens/prisjakt-offers/pkg/logger"
)

// Gate drops records that are missing required product fields before they
// reach the export sinks. Each rejection is logged; a bad record is a
// data-quality problem, not a crawl failure.
type Gate struct {
	next    Sink
	log     *logger.Logger
	dropped atomic.Int64
}

func NewGate(next Sink, log *logger.Logger) *Gate {
	return &Gate{next: next, log: log}
}

func (g *Gate) Write(o extract.Offer) error {
	if err := o.Validate(); err != nil {
		g.dropped.Add(1)
		g.log.Error("[export] rejecting record from %q: %v", o.ProductURL, err)
		return nil
	}
	return g.next.Write(o)
}

func (g *Gate) Close() error {
	if n := g.dropped.Load(); n > 0 {
		g.log.Warn("[export] %d records rejected at the sink gate", n)
	}
	return g.next.Close()
}

// Dropped reports how many records the gate has rejected so far.
func (g *Gate) Dropped() int {
	return int(g.dropped.Load())
}
