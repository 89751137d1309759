package kraken

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"krakenbridge/internal/circuitbreaker"
	"krakenbridge/internal/credentials"
	httpClient "krakenbridge/internal/http"
	"krakenbridge/internal/nonce"
	"krakenbridge/internal/ratelimit"
	"krakenbridge/pkg/core"
)

// KrakenExchange owns the public and private clients and exposes one typed
// method per operation.
type KrakenExchange struct {
	config     *core.Config
	httpClient *httpClient.Client
	public     *PublicClient
	private    *PrivateClient
	logger     zerolog.Logger
}

// Option is a functional option for configuring the KrakenExchange.
type Option func(*Options)

// Options holds configuration options for the KrakenExchange.
type Options struct {
	Logger zerolog.Logger
	Nonces NonceSource
}

// WithLogger returns an option that sets the logger for the exchange.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithNonceSource replaces the default millisecond nonce source. All
// clients sharing an API key must share one source.
func WithNonceSource(n NonceSource) Option {
	return func(o *Options) {
		o.Nonces = n
	}
}

// New validates config and builds the clients. Credentials are optional;
// when present they must be complete and the secret must decode, otherwise
// construction fails with a configuration fault.
func New(config *core.Config, opts ...Option) (*KrakenExchange, error) {
	if config == nil {
		return nil, core.NewConfigurationError(core.ErrCodeInvalidConfig, "config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, core.NewConfigurationError(core.ErrCodeInvalidConfig, "validate config").WithCause(err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Nonces == nil {
		options.Nonces = nonce.New()
	}

	var creds *credentials.Credentials
	if config.Credentials != nil {
		c, err := credentials.New(config.Credentials)
		if err != nil {
			return nil, err
		}
		creds = c
	}

	logger := options.Logger.With().Str("exchange", "kraken").Logger()

	hc, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:   config.BaseURL,
		Timeout:   config.Timeout,
		UserAgent: config.UserAgent,
	}, logger)
	if err != nil {
		return nil, core.NewConfigurationError(core.ErrCodeInvalidConfig, "create http client").WithCause(err)
	}

	rl, err := newLimiter(config)
	if err != nil {
		return nil, err
	}

	var cb *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		cb = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		}, circuitbreaker.WithStateChange(func(from, to circuitbreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		}))
	}

	t := &transport{
		http:       hc,
		limiter:    rl,
		breaker:    cb,
		normalizer: NewNormalizer(),
		logger:     logger,
	}

	private := &PrivateClient{t: t, nonces: options.Nonces}
	if creds != nil {
		private.creds = creds
		private.signer = newSigner(creds.Secret())
	}

	return &KrakenExchange{
		config:     config,
		httpClient: hc,
		public:     &PublicClient{t: t},
		private:    private,
		logger:     logger,
	}, nil
}

// newLimiter sizes the private counter from the tier, or from the explicit
// rate when no tier is set, and gives public endpoints their own bucket.
func newLimiter(config *core.Config) (*ratelimit.Limiter, error) {
	var rl *ratelimit.Limiter
	if config.Tier != "" {
		tier, ok := ratelimit.TierByName(config.Tier)
		if !ok {
			return nil, core.NewConfigurationError(core.ErrCodeInvalidConfig,
				fmt.Sprintf("unknown tier %q", config.Tier))
		}
		rl = ratelimit.NewForTier(tier)
	} else {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}
	rl.SetBucketLimit(publicBucket, config.PublicRateLimitRequests, config.PublicRateLimitPeriod)
	return rl, nil
}

// Name returns the exchange identifier "kraken".
func (e *KrakenExchange) Name() string {
	return "kraken"
}

// Public returns the unauthenticated client.
func (e *KrakenExchange) Public() *PublicClient {
	return e.public
}

// Private returns the signing client.
func (e *KrakenExchange) Private() *PrivateClient {
	return e.private
}

// Close releases the HTTP client. Later calls fail with CLIENT_CLOSED.
func (e *KrakenExchange) Close() error {
	if rl := e.public.t.limiter; rl != nil {
		m := rl.Metrics()
		e.logger.Debug().
			Int64("requests", m.TotalRequests).
			Int64("admitted", m.AllowedRequests).
			Int64("abandoned", m.DeniedRequests).
			Dur("waited", m.TotalWait).
			Int32("buckets", m.BucketCount).
			Msg("rate limiter totals")
	}
	if e.httpClient != nil {
		return e.httpClient.Close()
	}
	return nil
}

// Request is a typed set of operation parameters.
type Request interface {
	// Validate checks the parameters without any network activity.
	Validate() error
	// Payload serializes the parameters, omitting absent optional fields.
	Payload() *core.Payload
}

// Do validates req and sends it to the endpoint serving op. A nil req sends
// no parameters.
func (e *KrakenExchange) Do(ctx context.Context, op core.Operation, req Request) (map[string]any, error) {
	ep, err := EndpointFor(op)
	if err != nil {
		return nil, err
	}

	payload := core.NewPayload()
	if req != nil {
		if err := req.Validate(); err != nil {
			return nil, withPath(err, ep.Path)
		}
		payload = req.Payload()
	}

	e.logger.Debug().
		Str("op", op.String()).
		Str("path", ep.Path).
		Strs("params", payload.Keys()).
		Msg("dispatch")

	if ep.Private {
		return e.private.Call(ctx, ep.Path, payload)
	}
	return e.public.Call(ctx, ep.Path, payload)
}

func withPath(err error, path string) error {
	if ce, ok := err.(*core.Error); ok {
		return ce.WithPath(path)
	}
	return fmt.Errorf("%s: %w", path, err)
}
