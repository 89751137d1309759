package kraken

import (
	"fmt"
	"net/http"

	"krakenbridge/pkg/core"
)

const (
	// ProductionURL is the Kraken Spot REST endpoint.
	ProductionURL = core.DefaultBaseURL

	publicPrefix  = "/0/public/"
	privatePrefix = "/0/private/"

	// PageSize is the number of entries Kraken returns per paginated page.
	PageSize = 50

	publicBucket = "public"
)

// Endpoint describes how an operation reaches the exchange.
type Endpoint struct {
	Op      core.Operation
	Method  string
	Path    string
	Private bool
}

var endpoints = map[core.Operation]Endpoint{
	core.OpServerTime:           publicEndpoint(core.OpServerTime, "Time"),
	core.OpSystemStatus:         publicEndpoint(core.OpSystemStatus, "SystemStatus"),
	core.OpAssetInfo:            publicEndpoint(core.OpAssetInfo, "Assets"),
	core.OpTradableAssetPairs:   publicEndpoint(core.OpTradableAssetPairs, "AssetPairs"),
	core.OpTicker:               publicEndpoint(core.OpTicker, "Ticker"),
	core.OpOHLC:                 publicEndpoint(core.OpOHLC, "OHLC"),
	core.OpOrderBook:            publicEndpoint(core.OpOrderBook, "Depth"),
	core.OpRecentTrades:         publicEndpoint(core.OpRecentTrades, "Trades"),
	core.OpRecentSpreads:        publicEndpoint(core.OpRecentSpreads, "Spread"),
	core.OpAddOrder:             privateEndpoint(core.OpAddOrder, "AddOrder"),
	core.OpCancelOrder:          privateEndpoint(core.OpCancelOrder, "CancelOrder"),
	core.OpOpenOrders:           privateEndpoint(core.OpOpenOrders, "OpenOrders"),
	core.OpAmendOrder:           privateEndpoint(core.OpAmendOrder, "AmendOrder"),
	core.OpCancelAllOrdersAfter: privateEndpoint(core.OpCancelAllOrdersAfter, "CancelAllOrdersAfter"),
	core.OpAccountBalance:       privateEndpoint(core.OpAccountBalance, "Balance"),
	core.OpClosedOrders:         privateEndpoint(core.OpClosedOrders, "ClosedOrders"),
	core.OpTradesHistory:        privateEndpoint(core.OpTradesHistory, "TradesHistory"),
}

func publicEndpoint(op core.Operation, name string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodGet, Path: publicPrefix + name}
}

func privateEndpoint(op core.Operation, name string) Endpoint {
	return Endpoint{Op: op, Method: http.MethodPost, Path: privatePrefix + name, Private: true}
}

// EndpointFor returns the endpoint serving op.
func EndpointFor(op core.Operation) (Endpoint, error) {
	ep, ok := endpoints[op]
	if !ok {
		return Endpoint{}, core.NewValidationError(core.ErrCodeUnknownOperation, "",
			fmt.Sprintf("unsupported operation: %s", op))
	}
	return ep, nil
}

// SupportedOperations returns every operation this package implements.
func SupportedOperations() []core.Operation {
	return core.Operations()
}
