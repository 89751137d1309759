// Package ratelimit paces outgoing calls so the exchange's per-key call
// counter is never exceeded.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Tier describes a Kraken verification tier's private call counter: the
// counter may reach MaxCounter and decays by DecayPerSecond.
type Tier struct {
	Name           string
	MaxCounter     int
	DecayPerSecond float64
}

// Published counter limits per verification tier.
var (
	Starter      = Tier{Name: "starter", MaxCounter: 15, DecayPerSecond: 0.33}
	Intermediate = Tier{Name: "intermediate", MaxCounter: 20, DecayPerSecond: 0.5}
	Pro          = Tier{Name: "pro", MaxCounter: 20, DecayPerSecond: 1}
)

// TierByName returns the tier called name.
func TierByName(name string) (Tier, bool) {
	for _, t := range []Tier{Starter, Intermediate, Pro} {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// Period is the time a full counter needs to decay to zero.
func (t Tier) Period() time.Duration {
	return time.Duration(float64(t.MaxCounter) / t.DecayPerSecond * float64(time.Second))
}

// Limiter is a token bucket for private calls plus lazily created named
// buckets, used for public endpoints that are limited per IP.
type Limiter struct {
	private  *rate.Limiter
	buckets  sync.Map
	mu       sync.RWMutex
	requests int
	period   time.Duration
	metrics  *Metrics
}

// Metrics tracks limiter usage.
type Metrics struct {
	totalRequests   atomic.Int64
	allowedRequests atomic.Int64
	deniedRequests  atomic.Int64
	waitedNanos     atomic.Int64
	bucketCount     atomic.Int32
}

// New allows requests calls per period, with a burst of requests.
func New(requests int, period time.Duration) *Limiter {
	return &Limiter{
		private:  newLimiter(requests, period),
		requests: requests,
		period:   period,
		metrics:  &Metrics{},
	}
}

// NewForTier sizes the limiter from a verification tier.
func NewForTier(t Tier) *Limiter {
	return New(t.MaxCounter, t.Period())
}

func newLimiter(requests int, period time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(requests)/period.Seconds()), requests)
}

// Wait blocks until a private call may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.wait(ctx, l.private)
}

// WaitBucket blocks until the named bucket admits a call or ctx is done.
func (l *Limiter) WaitBucket(ctx context.Context, bucket string) error {
	return l.wait(ctx, l.bucket(bucket))
}

func (l *Limiter) wait(ctx context.Context, lim *rate.Limiter) error {
	l.metrics.totalRequests.Add(1)
	start := time.Now()
	if err := lim.Wait(ctx); err != nil {
		l.metrics.deniedRequests.Add(1)
		return err
	}
	l.metrics.waitedNanos.Add(int64(time.Since(start)))
	l.metrics.allowedRequests.Add(1)
	return nil
}

func (l *Limiter) bucket(name string) *rate.Limiter {
	if v, ok := l.buckets.Load(name); ok {
		return v.(*rate.Limiter)
	}

	l.mu.RLock()
	lim := newLimiter(l.requests, l.period)
	l.mu.RUnlock()

	actual, loaded := l.buckets.LoadOrStore(name, lim)
	if !loaded {
		l.metrics.bucketCount.Add(1)
	}
	return actual.(*rate.Limiter)
}

// SetBucketLimit sets the rate of a named bucket, creating it if needed.
func (l *Limiter) SetBucketLimit(bucket string, requests int, period time.Duration) {
	lim := l.bucket(bucket)
	lim.SetLimit(rate.Limit(float64(requests) / period.Seconds()))
	lim.SetBurst(requests)
}

// Metrics returns a snapshot of limiter statistics.
func (l *Limiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:   l.metrics.totalRequests.Load(),
		AllowedRequests: l.metrics.allowedRequests.Load(),
		DeniedRequests:  l.metrics.deniedRequests.Load(),
		TotalWait:       time.Duration(l.metrics.waitedNanos.Load()),
		BucketCount:     l.metrics.bucketCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	TotalRequests   int64
	AllowedRequests int64
	// DeniedRequests counts Wait calls abandoned by their context.
	DeniedRequests int64
	// TotalWait is the time spent blocked in successful Wait calls.
	TotalWait   time.Duration
	BucketCount int32
}
