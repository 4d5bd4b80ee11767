package export

import (
	"errors"

	"github.com/lourens/prisjakt-offers/pkg/extract"
)

// Sink consumes a stream of extracted offer records.
type Sink interface {
	Write(o extract.Offer) error
	Close() error
}

// header is the column order shared by every tabular sink.
var header = []string{
	"timestamp",
	"category",
	"product_id",
	"product_title",
	"product_url",
	"seller_name",
	"price_value",
	"price_currency",
	"price_raw",
	"source",
}

// MultiSink fans every record out to all child sinks.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Write(o extract.Offer) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
