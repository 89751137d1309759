package kraken

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"krakenbridge/internal/circuitbreaker"
	"krakenbridge/internal/credentials"
	httpClient "krakenbridge/internal/http"
	"krakenbridge/internal/ratelimit"
	"krakenbridge/pkg/core"
)

// maxErrorBody bounds how much of a non-2xx body is kept in the error message.
const maxErrorBody = 256

// NonceSource issues strictly increasing nonces. Implementations must be
// safe for concurrent use.
type NonceSource interface {
	Next() int64
}

// transport is the dispatch path shared by the public and private clients:
// pacing, fail-fast, one HTTP attempt, envelope normalization.
type transport struct {
	http       *httpClient.Client
	limiter    *ratelimit.Limiter
	breaker    *circuitbreaker.Breaker
	normalizer *Normalizer
	logger     zerolog.Logger
}

// admit waits for the rate limiter, then asks the circuit breaker. An empty
// bucket selects the private call counter.
func (t *transport) admit(ctx context.Context, path, bucket string) error {
	if t.limiter != nil {
		var err error
		if bucket == "" {
			err = t.limiter.Wait(ctx)
		} else {
			err = t.limiter.WaitBucket(ctx, bucket)
		}
		if err != nil {
			return waitError(path, err)
		}
	}

	if t.breaker != nil && !t.breaker.Allow() {
		return core.NewTransportError(core.ErrCodeCircuitBreaker, "circuit breaker is open", core.ErrCircuitBreakerOpen).
			WithPath(path)
	}
	return nil
}

// complete classifies the outcome of a single HTTP attempt.
func (t *transport) complete(path string, resp *httpClient.Response, err error) (map[string]any, error) {
	if err != nil {
		terr := requestError(path, err)
		if countsAsFailure(terr) {
			t.record(false)
		}
		t.logger.Debug().
			Str("path", path).
			Str("code", terr.Code).
			Err(err).
			Msg("request failed")
		return nil, terr
	}

	if !resp.IsSuccess() {
		t.record(resp.StatusCode < 500)
		return nil, core.NewTransportError(core.ErrCodeHTTPStatus, statusMessage(resp), nil).
			WithStatus(resp.StatusCode).
			WithPath(path)
	}
	t.record(true)

	result, err := t.normalizer.Normalize(resp.Body)
	if err != nil {
		var ce *core.Error
		if errors.As(err, &ce) {
			ce.WithPath(path).WithStatus(resp.StatusCode)
		}
		t.logger.Debug().
			Str("path", path).
			Err(err).
			Msg("envelope rejected")
		return nil, err
	}
	return result, nil
}

func (t *transport) record(success bool) {
	if t.breaker != nil {
		t.breaker.Record(success)
	}
}

func requestError(path string, err error) *core.Error {
	switch {
	case errors.Is(err, core.ErrClientClosed):
		return core.NewTransportError(core.ErrCodeClientClosed, "client is closed", err).WithPath(path)
	case errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err):
		return core.NewTransportError(core.ErrCodeTimeout, "request timed out", err).WithPath(path)
	case errors.Is(err, context.Canceled):
		return core.NewTransportError(core.ErrCodeNetwork, "request canceled", err).WithPath(path)
	default:
		return core.NewTransportError(core.ErrCodeNetwork, "request failed", err).WithPath(path)
	}
}

// waitError maps a rate limiter refusal. The limiter reports a deadline it
// cannot meet without wrapping context.DeadlineExceeded.
func waitError(path string, err error) *core.Error {
	if errors.Is(err, context.Canceled) {
		return core.NewTransportError(core.ErrCodeNetwork, "request canceled while rate limited", err).WithPath(path)
	}
	return core.NewTransportError(core.ErrCodeTimeout, "rate limit wait exceeds deadline", err).WithPath(path)
}

func countsAsFailure(err *core.Error) bool {
	return err.Code != string(core.ErrCodeClientClosed) && !errors.Is(err, context.Canceled)
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func statusMessage(resp *httpClient.Response) string {
	msg := fmt.Sprintf("unexpected HTTP status %s", resp.Status)
	if len(resp.Body) == 0 {
		return msg
	}
	body := resp.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return msg + ": " + string(body)
}

// PublicClient issues unauthenticated GET requests.
type PublicClient struct {
	t *transport
}

// Call sends params as the query string and returns the envelope result.
// A nil params sends no query.
func (c *PublicClient) Call(ctx context.Context, path string, params *core.Payload) (map[string]any, error) {
	if err := c.t.admit(ctx, path, publicBucket); err != nil {
		return nil, err
	}

	var opts []httpClient.RequestOption
	if params != nil && params.Len() > 0 {
		opts = append(opts, httpClient.WithQueryValues(params.Values()))
	}
	resp, err := c.t.http.Get(ctx, path, opts...)
	return c.t.complete(path, resp, err)
}

// PrivateClient issues signed POST requests.
type PrivateClient struct {
	t      *transport
	creds  *credentials.Credentials
	signer *Signer
	nonces NonceSource
}

// HasCredentials reports whether private calls can be made.
func (c *PrivateClient) HasCredentials() bool {
	return c.creds != nil
}

// Call signs and posts payload. The nonce is drawn after rate limiting so it
// reflects send time, and is placed first in a copy of the payload; the
// caller's payload is not modified. Without credentials it fails before any
// network activity.
func (c *PrivateClient) Call(ctx context.Context, path string, payload *core.Payload) (map[string]any, error) {
	if c.creds == nil {
		return nil, core.NewConfigurationError(core.ErrCodeNoCredentials, "private endpoints require api credentials").
			WithCause(core.ErrNoCredentials).
			WithPath(path)
	}

	if err := c.t.admit(ctx, path, ""); err != nil {
		return nil, err
	}

	signed := core.NewPayload().SetInt("nonce", c.nonces.Next()).Merge(payload)
	signature, body, err := c.signer.Sign(path, signed)
	if err != nil {
		return nil, err
	}

	resp, err := c.t.http.Post(ctx, path, body, httpClient.WithHeaders(map[string]string{
		"API-Key":      c.creds.APIKey(),
		"API-Sign":     signature,
		"Content-Type": httpClient.FormContentType,
	}))
	return c.t.complete(path, resp, err)
}
