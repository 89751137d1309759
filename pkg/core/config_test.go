package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "https://api.kraken.com", config.BaseURL)
	assert.Nil(t, config.Credentials)
	assert.Equal(t, 15*time.Second, config.Timeout)
	assert.Equal(t, 15, config.RateLimitRequests)
	assert.Equal(t, 45*time.Second, config.RateLimitPeriod)
	assert.Equal(t, "starter", config.Tier)
	assert.Equal(t, 10, config.PublicRateLimitRequests)
	assert.Equal(t, 10*time.Second, config.PublicRateLimitPeriod)
	assert.True(t, config.CircuitBreakerEnabled)
	assert.Equal(t, 5, config.CircuitBreakerFailThreshold)
	assert.Equal(t, 2, config.CircuitBreakerSuccessThreshold)
	assert.Equal(t, 30*time.Second, config.CircuitBreakerTimeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid_config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "missing_base_url",
			config:  DefaultConfig().WithBaseURL(""),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "malformed_base_url",
			config:  DefaultConfig().WithBaseURL("not a url"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "invalid_timeout",
			config:  DefaultConfig().WithTimeout(-1 * time.Second),
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name:    "invalid_rate_limit_requests",
			config:  DefaultConfig().WithRateLimit(0, time.Second),
			wantErr: true,
			errMsg:  "RateLimitRequests",
		},
		{
			name:    "invalid_rate_limit_period",
			config:  DefaultConfig().WithRateLimit(10, 0),
			wantErr: true,
			errMsg:  "RateLimitPeriod",
		},
		{
			name:    "unknown_tier",
			config:  DefaultConfig().WithTier("platinum"),
			wantErr: true,
			errMsg:  "Tier",
		},
		{
			name:    "invalid_public_rate_limit",
			config:  DefaultConfig().WithPublicRateLimit(0, time.Second),
			wantErr: true,
			errMsg:  "PublicRateLimitRequests",
		},
		{
			name: "invalid_log_level",
			config: func() *Config {
				c := DefaultConfig()
				c.LogLevel = "verbose"
				return c
			}(),
			wantErr: true,
			errMsg:  "LogLevel",
		},
		{
			name: "invalid_circuit_breaker_fail_threshold",
			config: func() *Config {
				c := DefaultConfig()
				c.CircuitBreakerFailThreshold = 0
				return c
			}(),
			wantErr: true,
			errMsg:  "CircuitBreakerFailThreshold",
		},
		{
			name: "invalid_circuit_breaker_success_threshold",
			config: func() *Config {
				c := DefaultConfig()
				c.CircuitBreakerSuccessThreshold = 0
				return c
			}(),
			wantErr: true,
			errMsg:  "CircuitBreakerSuccessThreshold",
		},
		{
			name: "invalid_circuit_breaker_timeout",
			config: func() *Config {
				c := DefaultConfig()
				c.CircuitBreakerTimeout = 0
				return c
			}(),
			wantErr: true,
			errMsg:  "CircuitBreakerTimeout",
		},
		{
			name: "disabled_circuit_breaker_ignores_thresholds",
			config: func() *Config {
				c := DefaultConfig().WithCircuitBreaker(false)
				c.CircuitBreakerFailThreshold = 0
				return c
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.errMsg), "expected error to contain %q, got %q", tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_WithCredentials(t *testing.T) {
	config := DefaultConfig()
	creds := &Credentials{
		APIKey: "test-key",
		Secret: "dGVzdC1zZWNyZXQ=",
	}

	result := config.WithCredentials(creds)

	assert.Equal(t, config, result)
	assert.Equal(t, creds, config.Credentials)
}

func TestConfig_WithTimeout(t *testing.T) {
	config := DefaultConfig()
	result := config.WithTimeout(30 * time.Second)

	assert.Equal(t, config, result)
	assert.Equal(t, 30*time.Second, config.Timeout)
}

func TestConfig_WithRateLimit(t *testing.T) {
	config := DefaultConfig()
	result := config.WithRateLimit(100, 10*time.Second)

	assert.Equal(t, config, result)
	assert.Equal(t, 100, config.RateLimitRequests)
	assert.Equal(t, 10*time.Second, config.RateLimitPeriod)
	assert.Empty(t, config.Tier)
}

func TestConfig_WithTier(t *testing.T) {
	config := DefaultConfig().WithRateLimit(1, time.Second)
	result := config.WithTier("pro")

	assert.Equal(t, config, result)
	assert.Equal(t, "pro", config.Tier)
	assert.NoError(t, config.Validate())
}

func TestConfig_WithPublicRateLimit(t *testing.T) {
	config := DefaultConfig()
	result := config.WithPublicRateLimit(5, time.Second)

	assert.Equal(t, config, result)
	assert.Equal(t, 5, config.PublicRateLimitRequests)
	assert.Equal(t, time.Second, config.PublicRateLimitPeriod)
}
