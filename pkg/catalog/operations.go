package catalog

import (
	"krakenbridge/pkg/core"
	"krakenbridge/pkg/exchange/kraken"
)

var (
	rebaseEnum = []string{"rebased", "base"}
	tifEnum    = []string{"GTC", "IOC", "GTD"}
)

func pairParam(desc string) Param {
	return Param{Name: "pair", Type: "string", Required: true, Description: desc}
}

func sinceParam() Param {
	return Param{Name: "since", Type: "integer", Description: "return entries after this cursor or unix time"}
}

func rangeParams() []Param {
	return []Param{
		{Name: "start", Type: "bound", Description: "unix time or id; results after it, exclusive"},
		{Name: "end", Type: "bound", Description: "unix time or id; results up to it, inclusive"},
		{Name: "ofs", Type: "integer", Description: "result offset for pagination, 50 per page"},
		{Name: "consolidate_taker", Type: "boolean", Description: "merge taker trades by order"},
	}
}

func enumNames[T interface{ String() string }](values ...T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return names
}

func builtin() []*Operation {
	return []*Operation{
		{
			Name:        core.OpServerTime.String(),
			Op:          core.OpServerTime,
			Description: "Get the exchange server time.",
			Params:      []Param{},
		},
		{
			Name:        core.OpSystemStatus.String(),
			Op:          core.OpSystemStatus,
			Description: "Get the current system status or trading mode.",
			Params:      []Param{},
		},
		{
			Name:        core.OpAssetInfo.String(),
			Op:          core.OpAssetInfo,
			Description: "Get information about the assets available for deposit, withdrawal, trading and earn.",
			Params: []Param{
				{Name: "assets", Type: "list", Description: "assets to query; all when omitted"},
				{Name: "aclass", Type: "string", Description: "asset class"},
			},
			newRequest: func() kraken.Request { return &kraken.AssetInfoRequest{} },
		},
		{
			Name:        core.OpTradableAssetPairs.String(),
			Op:          core.OpTradableAssetPairs,
			Description: "Get tradable asset pairs.",
			Params: []Param{
				{Name: "pairs", Type: "list", Description: "pairs to query; all when omitted"},
				{Name: "info", Type: "string", Enum: enumNames(core.PairInfoAll, core.PairInfoLeverage, core.PairInfoFees, core.PairInfoMargin)},
			},
			newRequest: func() kraken.Request { return &kraken.AssetPairsRequest{} },
		},
		{
			Name:        core.OpTicker.String(),
			Op:          core.OpTicker,
			Description: "Get ticker information for all or the requested pairs.",
			Params: []Param{
				{Name: "pairs", Type: "list", Description: "pairs to query; all when omitted"},
			},
			newRequest: func() kraken.Request { return &kraken.TickerRequest{} },
		},
		{
			Name:        core.OpOHLC.String(),
			Op:          core.OpOHLC,
			Description: "Get OHLC candles. The last entry is the current, not yet committed, frame.",
			Params: []Param{
				pairParam("asset pair"),
				{Name: "interval", Type: "integer", Default: 1, Enum: []string{"1", "5", "15", "30", "60", "240", "1440", "10080", "21600"}, Description: "minutes per candle"},
				sinceParam(),
			},
			newRequest: func() kraken.Request {
				req := kraken.NewOHLCRequest("")
				return &req
			},
		},
		{
			Name:        core.OpOrderBook.String(),
			Op:          core.OpOrderBook,
			Description: "Get the order book for a pair.",
			Params: []Param{
				pairParam("asset pair"),
				{Name: "count", Type: "integer", Description: "maximum asks and bids, at least 1"},
			},
			newRequest: func() kraken.Request { return &kraken.OrderBookRequest{} },
		},
		{
			Name:        core.OpRecentTrades.String(),
			Op:          core.OpRecentTrades,
			Description: "Get the last 1000 public trades, or those after since.",
			Params: []Param{
				pairParam("asset pair"),
				sinceParam(),
				{Name: "count", Type: "integer", Description: "maximum trades returned, at least 1"},
			},
			newRequest: func() kraken.Request { return &kraken.RecentTradesRequest{} },
		},
		{
			Name:        core.OpRecentSpreads.String(),
			Op:          core.OpRecentSpreads,
			Description: "Get recent top-of-book spreads for a pair.",
			Params: []Param{
				pairParam("asset pair"),
				sinceParam(),
			},
			newRequest: func() kraken.Request { return &kraken.RecentSpreadsRequest{} },
		},
		{
			Name:        core.OpAddOrder.String(),
			Op:          core.OpAddOrder,
			Description: "Place an order. Orders are only validated unless validate is false.",
			Private:     true,
			Params: []Param{
				pairParam("asset pair"),
				{Name: "side", Type: "string", Required: true, Enum: enumNames(core.SideBuy, core.SideSell)},
				{Name: "ordertype", Type: "string", Default: core.TypeLimit.String(), Enum: enumNames(core.OrderTypes()...)},
				{Name: "volume", Type: "decimal", Required: true, Description: "order quantity in base asset"},
				{Name: "price", Type: "price", Description: "limit or trigger price; +, - and # offsets and % suffix allowed"},
				{Name: "price2", Type: "price", Description: "limit price for *-limit trigger orders"},
				{Name: "timeinforce", Type: "string", Enum: tifEnum},
				{Name: "userref", Type: "integer", Description: "numeric reference shared by a group of orders"},
				{Name: "cl_ord_id", Type: "string", Description: "client order id"},
				{Name: "validate", Type: "boolean", Default: true, Description: "validate only, do not submit"},
			},
			newRequest: func() kraken.Request {
				return &kraken.AddOrderRequest{OrderType: core.TypeLimit, ValidateOnly: true}
			},
		},
		{
			Name:        core.OpCancelOrder.String(),
			Op:          core.OpCancelOrder,
			Description: "Cancel an order by txid, or every order with a userref.",
			Private:     true,
			Params: []Param{
				{Name: "txid_or_userref", Type: "string", Required: true},
			},
			newRequest: func() kraken.Request { return &kraken.CancelOrderRequest{} },
		},
		{
			Name:        core.OpOpenOrders.String(),
			Op:          core.OpOpenOrders,
			Description: "List open orders.",
			Private:     true,
			Params: []Param{
				{Name: "trades", Type: "boolean", Default: false, Description: "include related trades"},
				{Name: "userref", Type: "integer"},
				{Name: "cl_ord_id", Type: "string"},
			},
			newRequest: func() kraken.Request { return &kraken.OpenOrdersRequest{} },
		},
		{
			Name:        core.OpAmendOrder.String(),
			Op:          core.OpAmendOrder,
			Description: "Amend an open order in place. Give exactly one of order_id or cl_ord_id.",
			Private:     true,
			Params: []Param{
				{Name: "order_id", Type: "string"},
				{Name: "cl_ord_id", Type: "string"},
				{Name: "order_qty", Type: "decimal"},
				{Name: "limit_price", Type: "price"},
				{Name: "trigger_price", Type: "price"},
				{Name: "display_qty", Type: "decimal", Description: "visible quantity for iceberg orders"},
				{Name: "post_only", Type: "boolean"},
			},
			newRequest: func() kraken.Request { return &kraken.AmendOrderRequest{} },
		},
		{
			Name:        core.OpCancelAllOrdersAfter.String(),
			Op:          core.OpCancelAllOrdersAfter,
			Description: "Cancel all orders after a timeout. Call again to push the deadline back; 0 disables.",
			Private:     true,
			Params: []Param{
				{Name: "timeout_seconds", Type: "integer", Required: true},
			},
			newRequest: func() kraken.Request { return &kraken.CancelAllOrdersAfterRequest{} },
		},
		{
			Name:        core.OpAccountBalance.String(),
			Op:          core.OpAccountBalance,
			Description: "Get cash balances, net of pending withdrawals.",
			Private:     true,
			Params:      []Param{},
		},
		{
			Name:        core.OpClosedOrders.String(),
			Op:          core.OpClosedOrders,
			Description: "List closed orders, 50 per page.",
			Private:     true,
			Params: append([]Param{
				{Name: "trades", Type: "boolean", Default: false},
				{Name: "userref", Type: "integer"},
				{Name: "cl_ord_id", Type: "string"},
				{Name: "closetime", Type: "string", Default: core.CloseTimeBoth.String(), Enum: enumNames(core.CloseTimeBoth, core.CloseTimeOpen, core.CloseTimeClose)},
				{Name: "without_count", Type: "boolean", Default: false},
				{Name: "rebase_multiplier", Type: "string", Enum: rebaseEnum},
			}, rangeParams()...),
			newRequest: func() kraken.Request { return &kraken.ClosedOrdersRequest{} },
		},
		{
			Name:        core.OpTradesHistory.String(),
			Op:          core.OpTradesHistory,
			Description: "List account trades, newest first, 50 per page.",
			Private:     true,
			Params: append([]Param{
				{Name: "type", Type: "string", Default: core.TradeTypeAll.String(), Enum: enumNames(
					core.TradeTypeAll, core.TradeTypeAnyPosition, core.TradeTypeClosedPosition,
					core.TradeTypeClosingPosition, core.TradeTypeNoPosition)},
				{Name: "ledgers", Type: "boolean", Description: "include related ledger ids"},
				{Name: "rebase_multiplier", Type: "string", Enum: rebaseEnum},
			}, rangeParams()...),
			newRequest: func() kraken.Request { return &kraken.TradesHistoryRequest{} },
		},
	}
}
