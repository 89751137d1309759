package core

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_EncodePreservesInsertionOrder(t *testing.T) {
	p := NewPayload().
		Set("nonce", "1616492376594").
		Set("ordertype", "limit").
		Set("pair", "XBTUSD").
		Set("price", "37500").
		Set("type", "buy").
		Set("volume", "1.25")

	assert.Equal(t, "nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25", p.Encode())
	assert.Equal(t, []string{"nonce", "ordertype", "pair", "price", "type", "volume"}, p.Keys())
}

func TestPayload_SetExistingKeyKeepsPosition(t *testing.T) {
	p := NewPayload().Set("a", "1").Set("b", "2").Set("a", "3")

	assert.Equal(t, "a=3&b=2", p.Encode())
	assert.Equal(t, 2, p.Len())
}

func TestPayload_EscapesValues(t *testing.T) {
	p := NewPayload().Set("type", "closed position").Set("price", "+5%")

	assert.Equal(t, "type=closed+position&price=%2B5%25", p.Encode())
}

func TestPayload_TypedSetters(t *testing.T) {
	p := NewPayload().
		SetInt("userref", 42).
		SetBool("trades", false).
		SetDecimal("volume", MustDecimal("0.10")).
		SetPrice("price", MustPrice("#2.5"))

	assert.Equal(t, "userref=42&trades=false&volume=0.10&price=%232.5", p.Encode())
}

func TestPayload_RoundTrip(t *testing.T) {
	fields := map[string]string{
		"nonce":  "1700000000000",
		"pair":   "XBTUSD",
		"volume": "125",
		"abc":    "XYZ09",
	}
	p := NewPayload()
	for _, k := range []string{"nonce", "pair", "volume", "abc"} {
		p.Set(k, fields[k])
	}

	decoded, err := url.ParseQuery(p.Encode())
	require.NoError(t, err)

	got := make(map[string]string)
	for k, v := range decoded {
		require.Len(t, v, 1)
		got[k] = v[0]
	}
	assert.Equal(t, fields, got)
}

func TestPayload_Merge(t *testing.T) {
	base := NewPayload().Set("pair", "XBTUSD").Set("nonce", "1")
	signed := NewPayload().Set("nonce", "2").Merge(base)

	assert.Equal(t, "nonce=2&pair=XBTUSD", signed.Encode())
	assert.Equal(t, "pair=XBTUSD&nonce=1", base.Encode())
}

func TestPayload_Values(t *testing.T) {
	p := NewPayload().Set("pair", "XBTUSD").SetInt("count", 10)

	v := p.Values()
	assert.Equal(t, "XBTUSD", v.Get("pair"))
	assert.Equal(t, "10", v.Get("count"))
}

func TestSetOptional(t *testing.T) {
	p := NewPayload()

	SetOptional(p, "userref", Some[int64](7), FormatInt)
	SetOptional(p, "cl_ord_id", None[string](), FormatString)
	SetOptional(p, "asset", Some(""), FormatString)
	SetOptional(p, "post_only", Some(true), FormatBool)

	assert.Equal(t, "userref=7&post_only=true", p.Encode())
	assert.False(t, p.Has("cl_ord_id"))
	assert.False(t, p.Has("asset"))
}
