// Package http wraps resty with the transport settings shared by the public
// and private Kraken clients.
package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"krakenbridge/pkg/core"
)

// FormContentType is the content type of signed private request bodies.
const FormContentType = "application/x-www-form-urlencoded; charset=utf-8"

// Client is a single-attempt HTTP client. It never retries.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

// Config configures the underlying transport.
type Config struct {
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"min=1ms"`
	UserAgent string        `validate:"omitempty"`
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
	Header     nethttp.Header
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RequestOption customizes a single request.
type RequestOption func(*resty.Request)

// NewClient validates config and builds a client. Bodies are never logged.
func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}

	c := &Client{
		client: client,
		logger: logger,
	}

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		if resp == nil || resp.Request == nil {
			return nil
		}
		c.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Dur("duration", resp.Duration()).
			Msg("http response")
		return nil
	})

	return c, nil
}

// Close releases idle connections. Subsequent requests fail with core.ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Get issues a GET request to path.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, nethttp.MethodGet, path, nil, opts)
}

// Post issues a POST request with body sent verbatim.
func (c *Client) Post(ctx context.Context, path string, body string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, nethttp.MethodPost, path, &body, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body *string, opts []RequestOption) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	req := c.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(*body)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Bytes(),
		Header:     resp.Header(),
	}, nil
}

// WithHeaders sets several request headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeaders(headers)
	}
}

// WithQueryValues sets the query string. Empty values are sent as given.
func WithQueryValues(values url.Values) RequestOption {
	return func(r *resty.Request) {
		if len(values) > 0 {
			r.SetQueryParamsFromValues(values)
		}
	}
}
