package kraken

import (
	"context"

	"krakenbridge/pkg/core"
)

var rebaseMultipliers = []string{"rebased", "base"}

// AccountBalance returns balances per asset.
func (e *KrakenExchange) AccountBalance(ctx context.Context) (map[string]any, error) {
	return e.Do(ctx, core.OpAccountBalance, nil)
}

// ClosedOrdersRequest filters filled and cancelled orders. Results are paged
// by Offset, PageSize entries at a time.
type ClosedOrdersRequest struct {
	Trades           bool                      `json:"trades"`
	UserRef          core.Optional[int64]      `json:"userref"`
	ClientOrderID    core.Optional[string]     `json:"cl_ord_id"`
	Start            core.Optional[core.Bound] `json:"start"`
	End              core.Optional[core.Bound] `json:"end"`
	Offset           core.Optional[int64]      `json:"ofs"`
	CloseTime        core.CloseTime            `json:"closetime"`
	ConsolidateTaker core.Optional[bool]       `json:"consolidate_taker"`
	WithoutCount     bool                      `json:"without_count"`
	RebaseMultiplier core.Optional[string]     `json:"rebase_multiplier"`
}

func (r *ClosedOrdersRequest) Validate() error {
	if !r.CloseTime.IsValid() {
		return invalidParam("closetime", "must be one of [both open close]")
	}
	if err := checkMin("ofs", r.Offset, 0); err != nil {
		return err
	}
	return checkOneOf("rebase_multiplier", r.RebaseMultiplier, rebaseMultipliers...)
}

func (r *ClosedOrdersRequest) Payload() *core.Payload {
	p := core.NewPayload().
		SetBool("trades", r.Trades).
		Set("closetime", r.CloseTime.String()).
		SetBool("without_count", r.WithoutCount)
	core.SetOptional(p, "userref", r.UserRef, core.FormatInt)
	core.SetOptional(p, "cl_ord_id", r.ClientOrderID, core.FormatString)
	core.SetOptional(p, "start", r.Start, formatBound)
	core.SetOptional(p, "end", r.End, formatBound)
	core.SetOptional(p, "ofs", r.Offset, core.FormatInt)
	core.SetOptional(p, "consolidate_taker", r.ConsolidateTaker, core.FormatBool)
	core.SetOptional(p, "rebase_multiplier", r.RebaseMultiplier, core.FormatString)
	return p
}

// ClosedOrders returns one page of closed orders.
func (e *KrakenExchange) ClosedOrders(ctx context.Context, req ClosedOrdersRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpClosedOrders, &req)
}

// TradesHistoryRequest filters the account's fills.
type TradesHistoryRequest struct {
	Type             core.TradeType            `json:"type"`
	Start            core.Optional[core.Bound] `json:"start"`
	End              core.Optional[core.Bound] `json:"end"`
	Offset           core.Optional[int64]      `json:"ofs"`
	ConsolidateTaker core.Optional[bool]       `json:"consolidate_taker"`
	Ledgers          core.Optional[bool]       `json:"ledgers"`
	RebaseMultiplier core.Optional[string]     `json:"rebase_multiplier"`
}

func (r *TradesHistoryRequest) Validate() error {
	if !r.Type.IsValid() {
		return invalidParam("type", "unknown trade type")
	}
	if err := checkMin("ofs", r.Offset, 0); err != nil {
		return err
	}
	return checkOneOf("rebase_multiplier", r.RebaseMultiplier, rebaseMultipliers...)
}

func (r *TradesHistoryRequest) Payload() *core.Payload {
	p := core.NewPayload().Set("type", r.Type.String())
	core.SetOptional(p, "start", r.Start, formatBound)
	core.SetOptional(p, "end", r.End, formatBound)
	core.SetOptional(p, "ofs", r.Offset, core.FormatInt)
	core.SetOptional(p, "consolidate_taker", r.ConsolidateTaker, core.FormatBool)
	core.SetOptional(p, "ledgers", r.Ledgers, core.FormatBool)
	core.SetOptional(p, "rebase_multiplier", r.RebaseMultiplier, core.FormatString)
	return p
}

// TradesHistory returns one page of fills, newest first.
func (e *KrakenExchange) TradesHistory(ctx context.Context, req TradesHistoryRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpTradesHistory, &req)
}
