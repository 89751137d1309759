package kraken

import (
	"context"

	"krakenbridge/pkg/core"
)

// AddOrderRequest places a spot order. ValidateOnly defaults to true through
// NewAddOrderRequest: the exchange checks the order without placing it.
type AddOrderRequest struct {
	Pair          string                          `json:"pair" validate:"required"`
	Side          core.OrderSide                  `json:"side" validate:"required"`
	OrderType     core.OrderType                  `json:"ordertype"`
	Volume        core.Decimal                    `json:"volume"`
	Price         core.Optional[core.Price]       `json:"price"`
	Price2        core.Optional[core.Price]       `json:"price2"`
	TimeInForce   core.Optional[core.TimeInForce] `json:"timeinforce"`
	UserRef       core.Optional[int64]            `json:"userref"`
	ClientOrderID core.Optional[string]           `json:"cl_ord_id"`
	ValidateOnly  bool                            `json:"validate"`
}

// NewAddOrderRequest returns a validate-only limit order request.
func NewAddOrderRequest(pair string, side core.OrderSide, volume core.Decimal) AddOrderRequest {
	return AddOrderRequest{
		Pair:         pair,
		Side:         side,
		OrderType:    core.TypeLimit,
		Volume:       volume,
		ValidateOnly: true,
	}
}

func (r *AddOrderRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.Side.IsValid() {
		return invalidParam("side", "must be buy or sell")
	}
	if !r.OrderType.IsValid() {
		return invalidParam("ordertype", "unknown order type")
	}
	if !r.Volume.IsSet() {
		return invalidParam("volume", "is required")
	}
	if r.Volume.Sign() <= 0 {
		return invalidParam("volume", "must be positive")
	}
	return checkEnum("timeinforce", r.TimeInForce)
}

func (r *AddOrderRequest) Payload() *core.Payload {
	p := core.NewPayload().
		Set("pair", r.Pair).
		Set("type", r.Side.String()).
		Set("ordertype", r.OrderType.String()).
		SetDecimal("volume", r.Volume)
	core.SetOptional(p, "price", r.Price, formatPrice)
	core.SetOptional(p, "price2", r.Price2, formatPrice)
	core.SetOptional(p, "timeinforce", r.TimeInForce, formatEnum[core.TimeInForce])
	core.SetOptional(p, "userref", r.UserRef, core.FormatInt)
	core.SetOptional(p, "cl_ord_id", r.ClientOrderID, core.FormatString)
	if r.ValidateOnly {
		p.SetBool("validate", true)
	}
	return p
}

// AddOrder places, or with ValidateOnly only checks, an order.
func (e *KrakenExchange) AddOrder(ctx context.Context, req AddOrderRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpAddOrder, &req)
}

// CancelOrderRequest names an order txid, or a userref to cancel every order
// carrying it.
type CancelOrderRequest struct {
	TxIDOrUserRef string `json:"txid_or_userref" validate:"required"`
}

func (r *CancelOrderRequest) Validate() error {
	return validateStruct(r)
}

func (r *CancelOrderRequest) Payload() *core.Payload {
	return core.NewPayload().Set("txid", r.TxIDOrUserRef)
}

// CancelOrder cancels one order or all orders sharing a userref.
func (e *KrakenExchange) CancelOrder(ctx context.Context, req CancelOrderRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpCancelOrder, &req)
}

// OpenOrdersRequest filters open orders.
type OpenOrdersRequest struct {
	Trades        bool                  `json:"trades"`
	UserRef       core.Optional[int64]  `json:"userref"`
	ClientOrderID core.Optional[string] `json:"cl_ord_id"`
}

func (r *OpenOrdersRequest) Validate() error {
	return nil
}

func (r *OpenOrdersRequest) Payload() *core.Payload {
	p := core.NewPayload().SetBool("trades", r.Trades)
	core.SetOptional(p, "userref", r.UserRef, core.FormatInt)
	core.SetOptional(p, "cl_ord_id", r.ClientOrderID, core.FormatString)
	return p
}

// OpenOrders lists open orders.
func (e *KrakenExchange) OpenOrders(ctx context.Context, req OpenOrdersRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpOpenOrders, &req)
}

// AmendOrderRequest edits an open order in place. Exactly one identifier
// and at least one amendable field are required.
type AmendOrderRequest struct {
	OrderID       core.Optional[string]       `json:"order_id"`
	ClientOrderID core.Optional[string]       `json:"cl_ord_id"`
	OrderQty      core.Optional[core.Decimal] `json:"order_qty"`
	LimitPrice    core.Optional[core.Price]   `json:"limit_price"`
	TriggerPrice  core.Optional[core.Price]   `json:"trigger_price"`
	DisplayQty    core.Optional[core.Decimal] `json:"display_qty"`
	PostOnly      core.Optional[bool]         `json:"post_only"`
}

func (r *AmendOrderRequest) Validate() error {
	hasID, hasClientID := present(r.OrderID), present(r.ClientOrderID)
	switch {
	case !hasID && !hasClientID:
		return core.NewValidationError(core.ErrCodeMissingIdentifier, "order_id",
			"provide order_id or cl_ord_id")
	case hasID && hasClientID:
		return invalidParam("order_id", "order_id and cl_ord_id are mutually exclusive")
	}

	if !decimalSet(r.OrderQty) && !priceSet(r.LimitPrice) && !priceSet(r.TriggerPrice) && !decimalSet(r.DisplayQty) {
		return core.NewValidationError(core.ErrCodeNothingToAmend, "",
			"provide at least one of order_qty, limit_price, trigger_price, display_qty")
	}
	return nil
}

func (r *AmendOrderRequest) Payload() *core.Payload {
	p := core.NewPayload()
	if present(r.OrderID) {
		core.SetOptional(p, "order_id", r.OrderID, core.FormatString)
	} else if present(r.ClientOrderID) {
		core.SetOptional(p, "cl_ord_id", r.ClientOrderID, core.FormatString)
	}
	core.SetOptional(p, "order_qty", r.OrderQty, formatDecimal)
	core.SetOptional(p, "limit_price", r.LimitPrice, formatPrice)
	core.SetOptional(p, "trigger_price", r.TriggerPrice, formatPrice)
	core.SetOptional(p, "display_qty", r.DisplayQty, formatDecimal)
	core.SetOptional(p, "post_only", r.PostOnly, core.FormatBool)
	return p
}

// AmendOrder edits an order without losing queue priority where possible.
func (e *KrakenExchange) AmendOrder(ctx context.Context, req AmendOrderRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpAmendOrder, &req)
}

// CancelAllOrdersAfterRequest arms the dead man's switch. Zero disarms it.
type CancelAllOrdersAfterRequest struct {
	TimeoutSeconds int64 `json:"timeout_seconds" validate:"min=0"`
}

func (r *CancelAllOrdersAfterRequest) Validate() error {
	return validateStruct(r)
}

func (r *CancelAllOrdersAfterRequest) Payload() *core.Payload {
	return core.NewPayload().SetInt("timeout", r.TimeoutSeconds)
}

// CancelAllOrdersAfter schedules cancellation of all orders after the timeout.
func (e *KrakenExchange) CancelAllOrdersAfter(ctx context.Context, req CancelAllOrdersAfterRequest) (map[string]any, error) {
	return e.Do(ctx, core.OpCancelAllOrdersAfter, &req)
}
