package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpServerTime, "server_time"},
		{OpSystemStatus, "system_status"},
		{OpAssetInfo, "asset_info"},
		{OpTradableAssetPairs, "tradable_asset_pairs"},
		{OpTicker, "ticker"},
		{OpOHLC, "ohlc"},
		{OpOrderBook, "order_book"},
		{OpRecentTrades, "recent_trades"},
		{OpRecentSpreads, "recent_spreads"},
		{OpAddOrder, "add_order"},
		{OpCancelOrder, "cancel_order"},
		{OpOpenOrders, "open_orders"},
		{OpAmendOrder, "amend_order"},
		{OpCancelAllOrdersAfter, "cancel_all_orders_after"},
		{OpAccountBalance, "account_balance"},
		{OpClosedOrders, "closed_orders"},
		{OpTradesHistory, "trades_history"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}

	assert.Equal(t, "unknown", Operation(99).String())
}

func TestOperation_IsPrivate(t *testing.T) {
	assert.False(t, OpServerTime.IsPrivate())
	assert.False(t, OpRecentSpreads.IsPrivate())
	assert.True(t, OpAddOrder.IsPrivate())
	assert.True(t, OpAccountBalance.IsPrivate())
	assert.True(t, OpTradesHistory.IsPrivate())
}

func TestOperations(t *testing.T) {
	ops := Operations()

	assert.Len(t, ops, 17)
	assert.Equal(t, OpServerTime, ops[0])
	assert.Equal(t, OpTradesHistory, ops[len(ops)-1])
}
