package kraken

import (
	"context"

	"krakenbridge/pkg/core"
)

// OHLCIntervals lists the candle widths, in minutes, Kraken accepts.
var OHLCIntervals = []int{1, 5, 15, 30, 60, 240, 1440, 10080, 21600}

// ServerTime returns the exchange clock.
func (e *KrakenExchange) ServerTime(ctx context.Context) (map[string]any, error) {
	return e.Do(ctx, core.OpServerTime, nil)
}

// SystemStatus returns the trading status (online, maintenance, ...).
func (e *KrakenExchange) SystemStatus(ctx context.Context) (map[string]any, error) {
	return e.Do(ctx, core.OpSystemStatus, nil)
}

// AssetInfoRequest filters asset metadata.
type AssetInfoRequest struct {
	Assets     core.List            `json:"assets"`
	AssetClass core.Optional[string] `json:"aclass"`
}

func (r *AssetInfoRequest) Validate() error {
	return nil
}

func (r *AssetInfoRequest) Payload() *core.Payload {
	p := core.NewPayload()
	if s := r.Assets.String(); s != "" {
		p.Set("asset", s)
	}
	core.SetOptional(p, "aclass", r.AssetClass, core.FormatString)
	return p
}

// AssetInfo returns metadata for the requested assets, or all assets.
func (e *KrakenExchange) AssetInfo(ctx context.Context, req AssetInfoRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpAssetInfo, &req)
}

// AssetPairsRequest filters tradable pair metadata.
type AssetPairsRequest struct {
	Pairs core.List                    `json:"pairs"`
	Info  core.Optional[core.PairInfo] `json:"info"`
}

func (r *AssetPairsRequest) Validate() error {
	return checkEnum("info", r.Info)
}

func (r *AssetPairsRequest) Payload() *core.Payload {
	p := core.NewPayload()
	if s := r.Pairs.String(); s != "" {
		p.Set("pair", s)
	}
	core.SetOptional(p, "info", r.Info, formatEnum[core.PairInfo])
	return p
}

// TradableAssetPairs returns pair metadata.
func (e *KrakenExchange) TradableAssetPairs(ctx context.Context, req AssetPairsRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpTradableAssetPairs, &req)
}

// TickerRequest selects pairs for ticker data. No pairs means all pairs.
type TickerRequest struct {
	Pairs core.List `json:"pairs"`
}

func (r *TickerRequest) Validate() error {
	return nil
}

func (r *TickerRequest) Payload() *core.Payload {
	p := core.NewPayload()
	if s := r.Pairs.String(); s != "" {
		p.Set("pair", s)
	}
	return p
}

// Ticker returns ticker data.
func (e *KrakenExchange) Ticker(ctx context.Context, req TickerRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpTicker, &req)
}

// OHLCRequest selects candles for one pair.
type OHLCRequest struct {
	Pair     string               `json:"pair" validate:"required"`
	Interval int                  `json:"interval" validate:"oneof=1 5 15 30 60 240 1440 10080 21600"`
	Since    core.Optional[int64] `json:"since"`
}

// NewOHLCRequest returns a request for one-minute candles.
func NewOHLCRequest(pair string) OHLCRequest {
	return OHLCRequest{Pair: pair, Interval: 1}
}

func (r *OHLCRequest) Validate() error {
	return validateStruct(r)
}

func (r *OHLCRequest) Payload() *core.Payload {
	p := core.NewPayload().
		Set("pair", r.Pair).
		SetInt("interval", int64(r.Interval))
	core.SetOptional(p, "since", r.Since, core.FormatInt)
	return p
}

// OHLC returns candles and the "last" cursor for the next poll.
func (e *KrakenExchange) OHLC(ctx context.Context, req OHLCRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpOHLC, &req)
}

// OrderBookRequest selects the book depth for one pair.
type OrderBookRequest struct {
	Pair  string               `json:"pair" validate:"required"`
	Count core.Optional[int64] `json:"count"`
}

func (r *OrderBookRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return checkMin("count", r.Count, 1)
}

func (r *OrderBookRequest) Payload() *core.Payload {
	p := core.NewPayload().Set("pair", r.Pair)
	core.SetOptional(p, "count", r.Count, core.FormatInt)
	return p
}

// OrderBook returns bids and asks.
func (e *KrakenExchange) OrderBook(ctx context.Context, req OrderBookRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpOrderBook, &req)
}

// RecentTradesRequest selects public trades for one pair.
type RecentTradesRequest struct {
	Pair  string               `json:"pair" validate:"required"`
	Since core.Optional[int64] `json:"since"`
	Count core.Optional[int64] `json:"count"`
}

func (r *RecentTradesRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return checkMin("count", r.Count, 1)
}

func (r *RecentTradesRequest) Payload() *core.Payload {
	p := core.NewPayload().Set("pair", r.Pair)
	core.SetOptional(p, "since", r.Since, core.FormatInt)
	core.SetOptional(p, "count", r.Count, core.FormatInt)
	return p
}

// RecentTrades returns public trades.
func (e *KrakenExchange) RecentTrades(ctx context.Context, req RecentTradesRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpRecentTrades, &req)
}

// RecentSpreadsRequest selects spread snapshots for one pair.
type RecentSpreadsRequest struct {
	Pair  string               `json:"pair" validate:"required"`
	Since core.Optional[int64] `json:"since"`
}

func (r *RecentSpreadsRequest) Validate() error {
	return validateStruct(r)
}

func (r *RecentSpreadsRequest) Payload() *core.Payload {
	p := core.NewPayload().Set("pair", r.Pair)
	core.SetOptional(p, "since", r.Since, core.FormatInt)
	return p
}

// RecentSpreads returns recent bid/ask spreads.
func (e *KrakenExchange) RecentSpreads(ctx context.Context, req RecentSpreadsRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpRecentSpreads, &req)
}
