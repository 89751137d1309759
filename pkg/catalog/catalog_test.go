package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krakenbridge/pkg/core"
	"krakenbridge/pkg/exchange/kraken"
)

type call struct {
	op  core.Operation
	req kraken.Request
}

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []call
}

func (d *recordingDispatcher) Do(_ context.Context, op core.Operation, req kraken.Request) (map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call{op: op, req: req})
	return map[string]any{"ok": true}, nil
}

func (d *recordingDispatcher) last(t *testing.T) call {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.calls)
	return d.calls[len(d.calls)-1]
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func TestNew_RegistersEveryOperation(t *testing.T) {
	r := New(&recordingDispatcher{})

	names := r.Names()
	assert.Len(t, names, len(core.Operations()))
	assert.IsNonDecreasing(t, names)

	ops := r.Operations()
	require.Len(t, ops, len(core.Operations()))
	for i, op := range ops {
		assert.Equal(t, core.Operation(i), op.Op)
		assert.Equal(t, op.Op.String(), op.Name)
		assert.Equal(t, op.Op.IsPrivate(), op.Private, op.Name)
		assert.NotEmpty(t, op.Description, op.Name)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := New(&recordingDispatcher{})

	op, err := r.Get("add_order")
	require.NoError(t, err)
	assert.True(t, op.Private)

	var validate *Param
	for i := range op.Params {
		if op.Params[i].Name == "validate" {
			validate = &op.Params[i]
		}
	}
	require.NotNil(t, validate)
	assert.Equal(t, true, validate.Default)

	_, err = r.Get("withdraw")
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.True(t, core.IsErrorCode(err, core.ErrCodeUnknownOperation))
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry(&recordingDispatcher{})
	r.Register(&Operation{Name: "server_time", Op: core.OpServerTime, Description: "first"})
	r.Register(&Operation{Name: "server_time", Op: core.OpServerTime, Description: "second"})

	assert.Equal(t, []string{"server_time"}, r.Names())
	op, err := r.Get("server_time")
	require.NoError(t, err)
	assert.Equal(t, "second", op.Description)
}

func TestInvoke_AddOrderDefaults(t *testing.T) {
	d := &recordingDispatcher{}
	r := New(d)

	_, err := r.Invoke(context.Background(), "add_order", map[string]any{
		"pair":   "XBTUSD",
		"side":   "buy",
		"volume": "1.25",
		"price":  37500,
	})
	require.NoError(t, err)

	got := d.last(t)
	assert.Equal(t, core.OpAddOrder, got.op)
	req, ok := got.req.(*kraken.AddOrderRequest)
	require.True(t, ok)
	assert.True(t, req.ValidateOnly)
	assert.Equal(t, core.TypeLimit, req.OrderType)
	assert.Equal(t, "pair=XBTUSD&type=buy&ordertype=limit&volume=1.25&price=37500&validate=true", req.Payload().Encode())
}

func TestInvoke_AddOrderLive(t *testing.T) {
	d := &recordingDispatcher{}
	r := New(d)

	_, err := r.Invoke(context.Background(), "add_order", map[string]any{
		"pair":        "XBTUSD",
		"side":        "sell",
		"ordertype":   "market",
		"volume":      0.5,
		"timeinforce": "IOC",
		"userref":     7,
		"validate":    false,
	})
	require.NoError(t, err)

	req := d.last(t).req.(*kraken.AddOrderRequest)
	assert.Equal(t, "pair=XBTUSD&type=sell&ordertype=market&volume=0.5&timeinforce=IOC&userref=7", req.Payload().Encode())
}

func TestInvoke_OHLCDefaultInterval(t *testing.T) {
	d := &recordingDispatcher{}
	r := New(d)

	_, err := r.Invoke(context.Background(), "ohlc", map[string]any{"pair": "XBTUSD"})
	require.NoError(t, err)

	req := d.last(t).req.(*kraken.OHLCRequest)
	assert.Equal(t, 1, req.Interval)
}

func TestInvoke_ListArguments(t *testing.T) {
	d := &recordingDispatcher{}
	r := New(d)

	for _, pairs := range []any{"XBTUSD,ETHUSD", []string{"XBTUSD", "ETHUSD"}} {
		_, err := r.Invoke(context.Background(), "ticker", map[string]any{"pairs": pairs})
		require.NoError(t, err)
		req := d.last(t).req.(*kraken.TickerRequest)
		assert.Equal(t, "pair=XBTUSD%2CETHUSD", req.Payload().Encode())
	}
}

func TestInvoke_NoParams(t *testing.T) {
	d := &recordingDispatcher{}
	r := New(d)

	result, err := r.Invoke(context.Background(), "server_time", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, result)
	assert.Nil(t, d.last(t).req)
}

func TestInvoke_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		op   string
		args map[string]any
		code core.ErrorCode
	}{
		{"unknown operation", "withdraw", nil, core.ErrCodeUnknownOperation},
		{"unknown parameter", "ticker", map[string]any{"pair": "XBTUSD"}, core.ErrCodeInvalidParams},
		{"parameters on parameterless op", "account_balance", map[string]any{"asset": "ZUSD"}, core.ErrCodeInvalidParams},
		{"wrong type", "open_orders", map[string]any{"userref": "seven"}, core.ErrCodeInvalidParams},
		{"bad enum", "add_order", map[string]any{"pair": "XBTUSD", "side": "hold", "volume": "1"}, core.ErrCodeInvalidParams},
		{"bad decimal", "add_order", map[string]any{"pair": "XBTUSD", "side": "buy", "volume": "lots"}, core.ErrCodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &recordingDispatcher{}
			r := New(d)

			_, err := r.Invoke(context.Background(), tt.op, tt.args)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
			assert.True(t, core.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, 0, d.count())
		})
	}
}

func TestInvoke_ThroughExchange(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/0/public/Time", r.URL.Path)
		_, _ = io.WriteString(w, `{"error":[],"result":{"unixtime":1700000000}}`)
	}))
	defer srv.Close()

	ex, err := kraken.New(core.DefaultConfig().WithBaseURL(srv.URL))
	require.NoError(t, err)
	defer ex.Close()

	r := New(ex)
	result, err := r.Invoke(context.Background(), "server_time", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, json.Number("1700000000"), result["unixtime"])
	assert.Equal(t, int32(1), hits.Load())

	_, err = r.Invoke(context.Background(), "amend_order", map[string]any{"limit_price": "37000"})
	require.Error(t, err)
	assert.True(t, core.IsErrorCode(err, core.ErrCodeMissingIdentifier))
	assert.Equal(t, int32(1), hits.Load())
}

func TestInvoke_AmendSendsOneIdentifier(t *testing.T) {
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		_, _ = io.WriteString(w, `{"error":[],"result":{"amend_id":"TTW6PD-RC36L-ZZSWNU"}}`)
	}))
	defer srv.Close()

	cfg := core.DefaultConfig().
		WithBaseURL(srv.URL).
		WithCredentials(&core.Credentials{APIKey: "key", Secret: "c2VjcmV0"})
	ex, err := kraken.New(cfg)
	require.NoError(t, err)
	defer ex.Close()

	r := New(ex)
	_, err = r.Invoke(context.Background(), "amend_order", map[string]any{
		"order_id":    " ",
		"cl_ord_id":   "C1",
		"limit_price": "100",
	})
	require.NoError(t, err)

	form, err := url.ParseQuery(<-bodies)
	require.NoError(t, err)
	assert.False(t, form.Has("order_id"))
	assert.Equal(t, "C1", form.Get("cl_ord_id"))
	assert.Equal(t, "100", form.Get("limit_price"))
}
