package scraper

import (
	"sync"
)

// StackQueueStorage is a FILO storage backend for the colly queue. Popping
// the most recently added request makes the crawl depth-first: a category's
// pagination chain and products drain before the next category starts.
type StackQueueStorage struct {
	lock  *sync.Mutex
	stack [][]byte
}

func (s *StackQueueStorage) Init() error {
	s.lock = &sync.Mutex{}
	return nil
}

func (s *StackQueueStorage) AddRequest(r []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.stack = append(s.stack, r)

	return nil
}

func (s *StackQueueStorage) GetRequest() ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	n := len(s.stack) - 1
	if n < 0 {
		// the queue polls again after the consumer drains faster than
		// producers refill
		return nil, nil
	}
	r := s.stack[n]
	s.stack = s.stack[:n]

	return r, nil
}

func (s *StackQueueStorage) QueueSize() (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.stack), nil
}
