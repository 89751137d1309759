package http

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krakenbridge/pkg/core"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&Config{
		BaseURL:   baseURL,
		Timeout:   time.Second,
		UserAgent: "krakenbridge-test",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"missing_base_url", &Config{Timeout: time.Second}},
		{"bad_base_url", &Config{BaseURL: "api.kraken", Timeout: time.Second}},
		{"zero_timeout", &Config{BaseURL: "https://api.kraken.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/0/public/Ticker", r.URL.Path)
		assert.Equal(t, "XBTUSD", r.URL.Query().Get("pair"))
		assert.Equal(t, "krakenbridge-test", r.Header.Get("User-Agent"))
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"error":[],"result":{}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	resp, err := c.Get(context.Background(), "/0/public/Ticker", WithQueryValues(url.Values{"pair": {"XBTUSD"}}))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, `{"error":[],"result":{}}`, string(resp.Body))
}

func TestClient_PostSendsBodyVerbatim(t *testing.T) {
	const body = "nonce=1616492376594&ordertype=limit&pair=XBTUSD"

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, FormContentType, r.Header.Get("Content-Type"))
		assert.Equal(t, "key", r.Header.Get("API-Key"))
		got, _ := io.ReadAll(r.Body)
		assert.Equal(t, body, string(got))
		_, _ = w.Write([]byte(`{"error":[],"result":{}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	resp, err := c.Post(context.Background(), "/0/private/AddOrder", body,
		WithHeaders(map[string]string{"Content-Type": FormContentType, "API-Key": "key"}),
	)

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	resp, err := c.Get(context.Background(), "/0/public/Time")

	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "bad gateway", string(resp.Body))
}

func TestClient_NoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/0/public/Time")

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c, err := NewClient(&Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Get(context.Background(), "/0/public/Time")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Closed(t *testing.T) {
	c, err := NewClient(&Config{BaseURL: "https://api.kraken.com", Timeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Get(context.Background(), "/0/public/Time")
	assert.ErrorIs(t, err, core.ErrClientClosed)
}
