package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is the Kraken REST API endpoint.
const DefaultBaseURL = "https://api.kraken.com"

// Credentials holds API authentication credentials for the exchange.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"api_key"`
	// Secret is the base64-encoded private key used for signing requests.
	Secret string `json:"secret"`
}

// Config contains all configuration options for a Kraken client.
// It is constructed once at startup and passed by reference into the clients.
type Config struct {
	BaseURL     string       `json:"base_url" validate:"required,url"`
	Credentials *Credentials `json:"credentials,omitempty"`
	UserAgent   string       `json:"user_agent"`

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// Tier names a Kraken verification tier (starter, intermediate, pro).
	// When set it sizes the private call counter and RateLimitRequests and
	// RateLimitPeriod are ignored.
	Tier              string        `json:"tier" validate:"omitempty,oneof=starter intermediate pro"`
	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=1"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=1ms"`

	// Public endpoints are limited per IP, separately from the private counter.
	PublicRateLimitRequests int           `json:"public_rate_limit_requests" validate:"min=1"`
	PublicRateLimitPeriod   time.Duration `json:"public_rate_limit_period" validate:"min=1ms"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with sensible defaults.
// Default values: 15s timeout, starter tier private counter, 10 req/10s
// for public endpoints, circuit breaker with 5 failures/2 successes/30s timeout.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "krakenbridge/1.0",
		Timeout:   15 * time.Second,

		Tier:              "starter",
		RateLimitRequests: 15,
		RateLimitPeriod:   45 * time.Second,

		PublicRateLimitRequests: 10,
		PublicRateLimitPeriod:   10 * time.Second,

		CircuitBreakerEnabled:          true,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the configuration. Credentials are optional here: a client
// without them can still serve public endpoints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithBaseURL sets the API base URL and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets an explicit private call rate, clearing Tier, and
// returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.Tier = ""
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithTier sizes the private call counter from a verification tier and
// returns the config for chaining.
func (c *Config) WithTier(tier string) *Config {
	c.Tier = tier
	return c
}

// WithPublicRateLimit sets the public endpoint rate and returns the config for chaining.
func (c *Config) WithPublicRateLimit(requests int, period time.Duration) *Config {
	c.PublicRateLimitRequests = requests
	c.PublicRateLimitPeriod = period
	return c
}

// WithCircuitBreaker enables or disables the circuit breaker and returns the config for chaining.
func (c *Config) WithCircuitBreaker(enabled bool) *Config {
	c.CircuitBreakerEnabled = enabled
	return c
}
