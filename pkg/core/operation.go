package core

// Operation represents an action exposed to the tool host.
type Operation int

// Operation constants define all supported exchange operations.
const (
	// OpServerTime retrieves the exchange server time.
	OpServerTime Operation = iota
	// OpSystemStatus retrieves the current system status and trading mode.
	OpSystemStatus
	// OpAssetInfo retrieves asset metadata.
	OpAssetInfo
	// OpTradableAssetPairs retrieves tradable pair metadata.
	OpTradableAssetPairs
	// OpTicker retrieves level-1 ticker statistics.
	OpTicker
	// OpOHLC retrieves OHLC candles.
	OpOHLC
	// OpOrderBook retrieves order book depth.
	OpOrderBook
	// OpRecentTrades retrieves recent public trades.
	OpRecentTrades
	// OpRecentSpreads retrieves recent top-of-book spreads.
	OpRecentSpreads
	// OpAddOrder submits a new order (validate-only by default).
	OpAddOrder
	// OpCancelOrder cancels an open order by txid or userref.
	OpCancelOrder
	// OpOpenOrders retrieves open orders.
	OpOpenOrders
	// OpAmendOrder amends an open order in place.
	OpAmendOrder
	// OpCancelAllOrdersAfter arms or disables the dead man's switch.
	OpCancelAllOrdersAfter
	// OpAccountBalance retrieves cash balances.
	OpAccountBalance
	// OpClosedOrders retrieves closed orders, 50 per page.
	OpClosedOrders
	// OpTradesHistory retrieves trade history, 50 per page.
	OpTradesHistory
)

var operationNames = [...]string{
	"server_time",
	"system_status",
	"asset_info",
	"tradable_asset_pairs",
	"ticker",
	"ohlc",
	"order_book",
	"recent_trades",
	"recent_spreads",
	"add_order",
	"cancel_order",
	"open_orders",
	"amend_order",
	"cancel_all_orders_after",
	"account_balance",
	"closed_orders",
	"trades_history",
}

// String returns the host-facing name of the operation.
func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return "unknown"
	}
	return operationNames[o]
}

// IsPrivate reports whether the operation requires signed credentials.
func (o Operation) IsPrivate() bool {
	return o >= OpAddOrder && o <= OpTradesHistory
}

// Operations returns every supported operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}
