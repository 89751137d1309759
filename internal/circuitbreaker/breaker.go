// Package circuitbreaker stops sending requests to an endpoint that keeps
// failing. It only fails fast; it never retries.
package circuitbreaker

import (
	"sync"
	"time"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// FailThreshold consecutive failures open the breaker.
	FailThreshold int `json:"fail_threshold"`
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int `json:"success_threshold"`
	// Timeout is how long the breaker stays open before admitting a probe.
	Timeout time.Duration `json:"timeout"`
}

// Breaker is safe for concurrent use.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	config    Config
	now       func() time.Time
	onChange  func(from, to State)
	metrics   Metrics
}

type Metrics struct {
	TotalRequests   int64
	RejectedCalls   int64
	SuccessRequests int64
	FailedRequests  int64
	StateChanges    int32
}

type Option func(*Breaker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

// WithStateChange registers a callback invoked, under the breaker's lock, on
// every transition. It must not call back into the breaker.
func WithStateChange(fn func(from, to State)) Option {
	return func(b *Breaker) {
		b.onChange = fn
	}
}

func New(config Config, opts ...Option) *Breaker {
	b := &Breaker{
		state:  StateClosed,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow reports whether a request may be sent. An open breaker whose timeout
// has elapsed moves to half-open and admits the request as a probe.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.metrics.TotalRequests++
	b.advance()
	if b.state == StateOpen {
		b.metrics.RejectedCalls++
		return false
	}
	return true
}

// Record reports the outcome of a request admitted by Allow.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	if success {
		b.metrics.SuccessRequests++
	} else {
		b.metrics.FailedRequests++
	}

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.config.FailThreshold {
			b.open()
		}
	case StateHalfOpen:
		if !success {
			b.open()
			return
		}
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
			b.failures = 0
			b.successes = 0
		}
	case StateOpen:
		// Outcome of a request admitted before the breaker opened.
	}
}

func (b *Breaker) advance() {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.config.Timeout {
		b.transitionTo(StateHalfOpen)
		b.failures = 0
		b.successes = 0
	}
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.successes = 0
	b.transitionTo(StateOpen)
}

func (b *Breaker) transitionTo(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.metrics.StateChanges++
	if b.onChange != nil {
		b.onChange(from, to)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return b.state
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
	b.failures = 0
	b.successes = 0
}

func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) Successes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.successes
}

func (b *Breaker) Metrics() MetricsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return MetricsSnapshot{
		Metrics:      b.metrics,
		CurrentState: b.state.String(),
	}
}

type MetricsSnapshot struct {
	Metrics
	CurrentState string
}
