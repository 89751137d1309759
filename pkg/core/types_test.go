package core

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSide(t *testing.T) {
	assert.Equal(t, "buy", SideBuy.String())
	assert.Equal(t, "sell", SideSell.String())
	assert.False(t, OrderSide(0).IsValid())
	assert.Equal(t, "", OrderSide(0).String())

	side, err := ParseOrderSide("SELL")
	require.NoError(t, err)
	assert.Equal(t, SideSell, side)

	_, err = ParseOrderSide("short")
	assert.Error(t, err)
}

func TestOrderType_String(t *testing.T) {
	tests := []struct {
		orderType OrderType
		want      string
	}{
		{TypeLimit, "limit"},
		{TypeMarket, "market"},
		{TypeStopLoss, "stop-loss"},
		{TypeTakeProfit, "take-profit"},
		{TypeStopLossLimit, "stop-loss-limit"},
		{TypeTakeProfitLimit, "take-profit-limit"},
		{TypeTrailingStop, "trailing-stop"},
		{TypeTrailingStopLimit, "trailing-stop-limit"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.orderType.String())
			parsed, err := ParseOrderType(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.orderType, parsed)
		})
	}

	assert.False(t, OrderType(99).IsValid())
}

func TestOrderType_UnmarshalJSON(t *testing.T) {
	var ot OrderType
	require.NoError(t, sonic.Unmarshal([]byte(`"stop_loss_limit"`), &ot))
	assert.Equal(t, TypeStopLossLimit, ot)

	err := sonic.Unmarshal([]byte(`"iceberg"`), &ot)
	assert.Error(t, err)
}

func TestOrderType_MarshalJSON(t *testing.T) {
	data, err := sonic.Marshal(TypeTakeProfit)
	require.NoError(t, err)
	assert.Equal(t, `"take-profit"`, string(data))

	_, err = OrderType(42).MarshalJSON()
	assert.Error(t, err)
}

func TestOrderType_PriceRequirements(t *testing.T) {
	assert.False(t, TypeMarket.NeedsPrice())
	assert.True(t, TypeLimit.NeedsPrice())
	assert.True(t, TypeStopLossLimit.NeedsSecondaryPrice())
	assert.False(t, TypeStopLoss.NeedsSecondaryPrice())
}

func TestTimeInForce(t *testing.T) {
	for _, tif := range []TimeInForce{GTC, IOC, GTD} {
		parsed, err := ParseTimeInForce(tif.String())
		require.NoError(t, err)
		assert.Equal(t, tif, parsed)
	}

	_, err := ParseTimeInForce("FOK")
	assert.Error(t, err)
}

func TestCloseTime(t *testing.T) {
	assert.Equal(t, "both", CloseTime(0).String())

	var c CloseTime
	require.NoError(t, sonic.Unmarshal([]byte(`"close"`), &c))
	assert.Equal(t, CloseTimeClose, c)

	assert.Error(t, sonic.Unmarshal([]byte(`"never"`), &c))
}

func TestTradeType(t *testing.T) {
	assert.Equal(t, "all", TradeType(0).String())

	tt, err := ParseTradeType("closing_position")
	require.NoError(t, err)
	assert.Equal(t, TradeTypeClosingPosition, tt)
	assert.Equal(t, "closing position", tt.String())

	_, err = ParseTradeType("open position")
	assert.Error(t, err)
}

func TestPairInfo(t *testing.T) {
	p, err := ParsePairInfo("fees")
	require.NoError(t, err)
	assert.Equal(t, PairInfoFees, p)
	assert.Equal(t, "info", PairInfoAll.String())

	_, err = ParsePairInfo("volume")
	assert.Error(t, err)
}
