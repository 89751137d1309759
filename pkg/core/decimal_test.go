package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "1.25", "1.25"},
		{"string_trailing_zero", "0.10", "0.10"},
		{"exponent", "1.5E+3", "1500"},
		{"int", 3, "3"},
		{"int64", int64(1700000000), "1700000000"},
		{"uint64", uint64(9), "9"},
		{"float64_no_drift", 0.1, "0.1"},
		{"float32", float32(2.5), "2.5"},
		{"json_number", json.Number("69000.5"), "69000.5"},
		{"apd", apd.New(125, -2), "1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecimal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestNewDecimal_Rejects(t *testing.T) {
	for _, input := range []any{"abc", "NaN", "Infinity", "", true, nil, Decimal{}} {
		_, err := NewDecimal(input)
		assert.Error(t, err, "input %v", input)
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	var d Decimal
	require.NoError(t, sonic.Unmarshal([]byte(`0.30000000000000004`), &d))
	assert.Equal(t, "0.30000000000000004", d.String())

	require.NoError(t, sonic.Unmarshal([]byte(`"1.250"`), &d))
	assert.Equal(t, "1.250", d.String())

	assert.Error(t, sonic.Unmarshal([]byte(`"ten"`), &d))
}

func TestDecimal_Sign(t *testing.T) {
	assert.Equal(t, 1, MustDecimal("0.01").Sign())
	assert.Equal(t, 0, MustDecimal("0").Sign())
	assert.Equal(t, -1, MustDecimal("-2").Sign())
	assert.Equal(t, 0, Decimal{}.Sign())
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		relative bool
		wantErr  bool
	}{
		{"37500", "37500", false, false},
		{"+100", "+100", true, false},
		{"-1.5%", "-1.5%", true, false},
		{"#25", "#25", true, false},
		{"2%", "2%", true, false},
		{"+-5", "", false, true},
		{"%", "", false, true},
		{"abc", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
			assert.Equal(t, tt.relative, p.IsRelative())
		})
	}
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	var p Price
	require.NoError(t, sonic.Unmarshal([]byte(`69000.5`), &p))
	assert.Equal(t, "69000.5", p.String())

	require.NoError(t, sonic.Unmarshal([]byte(`"+0.5%"`), &p))
	assert.Equal(t, "+0.5%", p.String())
}

func TestList(t *testing.T) {
	var l List
	require.NoError(t, sonic.Unmarshal([]byte(`"XBTUSD, ETHUSD"`), &l))
	assert.Equal(t, "XBTUSD,ETHUSD", l.String())

	require.NoError(t, sonic.Unmarshal([]byte(`["XBT","ETH",""]`), &l))
	assert.Equal(t, "XBT,ETH", l.String())
}

func TestBound(t *testing.T) {
	var b Bound
	require.NoError(t, sonic.Unmarshal([]byte(`1700000000`), &b))
	assert.Equal(t, "1700000000", b.String())

	require.NoError(t, sonic.Unmarshal([]byte(`"OQCLML-BW3P3-BUCMWZ"`), &b))
	assert.Equal(t, "OQCLML-BW3P3-BUCMWZ", b.String())

	assert.Error(t, sonic.Unmarshal([]byte(`true`), &b))

	assert.Equal(t, Bound("1700000000"), BoundTime(time.Unix(1700000000, 0)))
}

func TestOptional(t *testing.T) {
	var o Optional[int64]
	assert.False(t, o.IsSet())
	assert.Equal(t, int64(5), o.OrElse(5))

	require.NoError(t, sonic.Unmarshal([]byte(`12`), &o))
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(12), v)

	require.NoError(t, sonic.Unmarshal([]byte(`null`), &o))
	assert.False(t, o.IsSet())

	var req struct {
		Price Optional[Price] `json:"price"`
		Side  Optional[OrderSide]
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"price":"#10"}`), &req))
	p, ok := req.Price.Get()
	assert.True(t, ok)
	assert.Equal(t, "#10", p.String())
	assert.False(t, req.Side.IsSet())

	data, err := sonic.Marshal(None[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
