package kraken

import (
	"fmt"

	"krakenbridge/pkg/core"
)

// AddOrderBuilder provides a fluent interface for constructing add_order
// requests. It accumulates the first parse error and reports it on Build.
// Orders are validate-only unless Live is called.
//
// Example:
//
//	req, err := kraken.NewAddOrderBuilder("XBTUSD").
//	    Buy().
//	    Limit().
//	    Price("37500").
//	    Volume("1.25").
//	    Build()
type AddOrderBuilder struct {
	req AddOrderRequest
	err error
}

// NewAddOrderBuilder creates a builder for a validate-only limit order on pair.
func NewAddOrderBuilder(pair string) *AddOrderBuilder {
	return &AddOrderBuilder{
		req: AddOrderRequest{
			Pair:         pair,
			OrderType:    core.TypeLimit,
			ValidateOnly: true,
		},
	}
}

// Side sets the order side.
func (b *AddOrderBuilder) Side(side core.OrderSide) *AddOrderBuilder {
	b.req.Side = side
	return b
}

func (b *AddOrderBuilder) Buy() *AddOrderBuilder  { return b.Side(core.SideBuy) }
func (b *AddOrderBuilder) Sell() *AddOrderBuilder { return b.Side(core.SideSell) }

// Type sets the order type.
func (b *AddOrderBuilder) Type(orderType core.OrderType) *AddOrderBuilder {
	b.req.OrderType = orderType
	return b
}

func (b *AddOrderBuilder) Market() *AddOrderBuilder { return b.Type(core.TypeMarket) }
func (b *AddOrderBuilder) Limit() *AddOrderBuilder  { return b.Type(core.TypeLimit) }

// Price sets the limit or trigger price. Relative forms such as "+5%" are
// accepted.
func (b *AddOrderBuilder) Price(price string) *AddOrderBuilder {
	if b.err != nil {
		return b
	}
	p, err := core.ParsePrice(price)
	if err != nil {
		b.err = fmt.Errorf("parse price: %w", err)
		return b
	}
	b.req.Price = core.Some(p)
	return b
}

// Price2 sets the secondary price used by the *-limit trigger orders.
func (b *AddOrderBuilder) Price2(price string) *AddOrderBuilder {
	if b.err != nil {
		return b
	}
	p, err := core.ParsePrice(price)
	if err != nil {
		b.err = fmt.Errorf("parse price2: %w", err)
		return b
	}
	b.req.Price2 = core.Some(p)
	return b
}

// Volume sets the order volume in base currency.
func (b *AddOrderBuilder) Volume(volume string) *AddOrderBuilder {
	if b.err != nil {
		return b
	}
	d, err := core.ParseDecimal(volume)
	if err != nil {
		b.err = fmt.Errorf("parse volume: %w", err)
		return b
	}
	b.req.Volume = d
	return b
}

// VolumeDecimal sets the order volume from an already parsed Decimal.
func (b *AddOrderBuilder) VolumeDecimal(volume core.Decimal) *AddOrderBuilder {
	b.req.Volume = volume
	return b
}

// TimeInForce sets the order lifetime policy.
func (b *AddOrderBuilder) TimeInForce(tif core.TimeInForce) *AddOrderBuilder {
	b.req.TimeInForce = core.Some(tif)
	return b
}

func (b *AddOrderBuilder) GTC() *AddOrderBuilder { return b.TimeInForce(core.GTC) }
func (b *AddOrderBuilder) IOC() *AddOrderBuilder { return b.TimeInForce(core.IOC) }

// UserRef tags the order with a numeric reference shared by a group of orders.
func (b *AddOrderBuilder) UserRef(ref int64) *AddOrderBuilder {
	b.req.UserRef = core.Some(ref)
	return b
}

// ClientOrderID sets a client-assigned identifier for order tracking.
func (b *AddOrderBuilder) ClientOrderID(id string) *AddOrderBuilder {
	b.req.ClientOrderID = core.Some(id)
	return b
}

// Live turns off validate-only mode so the exchange places the order.
func (b *AddOrderBuilder) Live() *AddOrderBuilder {
	b.req.ValidateOnly = false
	return b
}

// Build validates and returns the constructed request. Unlike a bare
// AddOrderRequest, it also requires the prices the order type depends on.
func (b *AddOrderBuilder) Build() (AddOrderRequest, error) {
	if b.err != nil {
		return AddOrderRequest{}, core.NewValidationError(core.ErrCodeInvalidParams, "", "invalid order").WithCause(b.err)
	}
	if err := b.req.Validate(); err != nil {
		return AddOrderRequest{}, err
	}
	if b.req.OrderType.NeedsPrice() && !b.req.Price.IsSet() {
		return AddOrderRequest{}, invalidParam("price", fmt.Sprintf("is required for %s orders", b.req.OrderType))
	}
	if b.req.OrderType.NeedsSecondaryPrice() && !b.req.Price2.IsSet() {
		return AddOrderRequest{}, invalidParam("price2", fmt.Sprintf("is required for %s orders", b.req.OrderType))
	}
	return b.req, nil
}
