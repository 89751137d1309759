// Package nonce issues the strictly increasing integers the exchange requires
// on every private request.
package nonce

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Source issues millisecond nonces. When the clock reading does not exceed
// the last issued value (two draws in the same millisecond, or the wall clock
// stepping backwards) the next value is last+1 instead.
//
// A Source is safe for concurrent use. Share one Source per API key.
type Source struct {
	mu    sync.Mutex
	last  int64
	clock Clock
}

// Option configures a Source.
type Option func(*Source)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(s *Source) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New returns a Source backed by the wall clock.
func New(opts ...Option) *Source {
	s := &Source{clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next nonce. It never fails.
func (s *Source) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.clock().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return n
}
