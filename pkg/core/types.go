package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Enumerated request parameters. Each type maps to the exchange's wire value
// through an exhaustive switch; values outside the declared set report an
// empty String and IsValid false so they are rejected before any request.

func unmarshalEnum[T any](data []byte, parse func(string) (T, error), dst *T) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func marshalEnum(s string, valid bool, name string) ([]byte, error) {
	if !valid {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return []byte(strconv.Quote(s)), nil
}

// OrderSide represents the direction of an order. The zero value is unset.
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideBuy indicates an order to purchase an asset.
	SideBuy OrderSide = iota + 1
	// SideSell indicates an order to sell an asset.
	SideSell
)

// String returns the wire value ("buy" or "sell").
func (s OrderSide) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return ""
	}
}

// IsValid reports whether s is a declared side.
func (s OrderSide) IsValid() bool { return s.String() != "" }

// ParseOrderSide parses "buy" or "sell", case-insensitively.
func ParseOrderSide(v string) (OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return 0, fmt.Errorf("unknown order side %q", v)
}

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) {
	return marshalEnum(s.String(), s.IsValid(), "order side")
}

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
// Unknown values are rejected.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseOrderSide, s)
}

// OrderType represents how an order executes. The zero value is limit.
type OrderType int

// Order type constants.
const (
	TypeLimit OrderType = iota
	TypeMarket
	TypeStopLoss
	TypeTakeProfit
	TypeStopLossLimit
	TypeTakeProfitLimit
	TypeTrailingStop
	TypeTrailingStopLimit
)

// String returns the wire value of the order type.
func (t OrderType) String() string {
	switch t {
	case TypeLimit:
		return "limit"
	case TypeMarket:
		return "market"
	case TypeStopLoss:
		return "stop-loss"
	case TypeTakeProfit:
		return "take-profit"
	case TypeStopLossLimit:
		return "stop-loss-limit"
	case TypeTakeProfitLimit:
		return "take-profit-limit"
	case TypeTrailingStop:
		return "trailing-stop"
	case TypeTrailingStopLimit:
		return "trailing-stop-limit"
	default:
		return ""
	}
}

// IsValid reports whether t is a declared order type.
func (t OrderType) IsValid() bool { return t.String() != "" }

// NeedsPrice reports whether the order type requires the price field.
func (t OrderType) NeedsPrice() bool {
	return t != TypeMarket
}

// NeedsSecondaryPrice reports whether the order type requires price2.
func (t OrderType) NeedsSecondaryPrice() bool {
	return t == TypeStopLossLimit || t == TypeTakeProfitLimit || t == TypeTrailingStopLimit
}

// OrderTypes lists every declared order type.
func OrderTypes() []OrderType {
	return []OrderType{TypeLimit, TypeMarket, TypeStopLoss, TypeTakeProfit,
		TypeStopLossLimit, TypeTakeProfitLimit, TypeTrailingStop, TypeTrailingStopLimit}
}

// ParseOrderType parses a wire value such as "stop-loss-limit".
// Underscores are accepted in place of dashes.
func ParseOrderType(v string) (OrderType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "_", "-")
	for _, t := range OrderTypes() {
		if t.String() == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown order type %q", v)
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return marshalEnum(t.String(), t.IsValid(), "order type")
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
// Unknown values are rejected.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseOrderType, t)
}

// TimeInForce defines how long an order remains active.
type TimeInForce int

// Time in force constants define order lifetime behavior.
const (
	// GTC (Good Till Canceled) keeps the order active until filled or canceled.
	GTC TimeInForce = iota
	// IOC (Immediate Or Cancel) requires immediate execution; unfilled portion is canceled.
	IOC
	// GTD (Good Till Date) keeps the order active until its expiry time.
	GTD
)

// String returns the wire value of the time in force.
func (t TimeInForce) String() string {
	switch t {
	case GTC:
		return "GTC"
	case IOC:
		return "IOC"
	case GTD:
		return "GTD"
	default:
		return ""
	}
}

// IsValid reports whether t is a declared time in force.
func (t TimeInForce) IsValid() bool { return t.String() != "" }

// ParseTimeInForce parses "GTC", "IOC" or "GTD", case-insensitively.
func ParseTimeInForce(v string) (TimeInForce, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "GTC":
		return GTC, nil
	case "IOC":
		return IOC, nil
	case "GTD":
		return GTD, nil
	}
	return 0, fmt.Errorf("unknown time in force %q", v)
}

// MarshalJSON implements json.Marshaler for TimeInForce.
func (t TimeInForce) MarshalJSON() ([]byte, error) {
	return marshalEnum(t.String(), t.IsValid(), "time in force")
}

// UnmarshalJSON implements json.Unmarshaler for TimeInForce.
func (t *TimeInForce) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseTimeInForce, t)
}

// CloseTime selects which timestamp the closed-orders time range applies to.
// The zero value is both.
type CloseTime int

// Close time constants.
const (
	CloseTimeBoth CloseTime = iota
	CloseTimeOpen
	CloseTimeClose
)

// String returns the wire value of the close time filter.
func (c CloseTime) String() string {
	switch c {
	case CloseTimeBoth:
		return "both"
	case CloseTimeOpen:
		return "open"
	case CloseTimeClose:
		return "close"
	default:
		return ""
	}
}

// IsValid reports whether c is a declared filter.
func (c CloseTime) IsValid() bool { return c.String() != "" }

// ParseCloseTime parses "both", "open" or "close".
func ParseCloseTime(v string) (CloseTime, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "both":
		return CloseTimeBoth, nil
	case "open":
		return CloseTimeOpen, nil
	case "close":
		return CloseTimeClose, nil
	}
	return 0, fmt.Errorf("unknown closetime %q", v)
}

// MarshalJSON implements json.Marshaler for CloseTime.
func (c CloseTime) MarshalJSON() ([]byte, error) {
	return marshalEnum(c.String(), c.IsValid(), "closetime")
}

// UnmarshalJSON implements json.Unmarshaler for CloseTime.
func (c *CloseTime) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseCloseTime, c)
}

// TradeType classifies trades by their relation to margin positions.
// The zero value is all.
type TradeType int

// Trade type constants.
const (
	TradeTypeAll TradeType = iota
	TradeTypeAnyPosition
	TradeTypeClosedPosition
	TradeTypeClosingPosition
	TradeTypeNoPosition
)

// String returns the wire value of the trade type.
func (t TradeType) String() string {
	switch t {
	case TradeTypeAll:
		return "all"
	case TradeTypeAnyPosition:
		return "any position"
	case TradeTypeClosedPosition:
		return "closed position"
	case TradeTypeClosingPosition:
		return "closing position"
	case TradeTypeNoPosition:
		return "no position"
	default:
		return ""
	}
}

// IsValid reports whether t is a declared trade type.
func (t TradeType) IsValid() bool { return t.String() != "" }

// ParseTradeType parses a wire value such as "closed position".
// Underscores are accepted in place of spaces.
func ParseTradeType(v string) (TradeType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "_", " ")
	for t := TradeTypeAll; t <= TradeTypeNoPosition; t++ {
		if t.String() == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trade type %q", v)
}

// MarshalJSON implements json.Marshaler for TradeType.
func (t TradeType) MarshalJSON() ([]byte, error) {
	return marshalEnum(t.String(), t.IsValid(), "trade type")
}

// UnmarshalJSON implements json.Unmarshaler for TradeType.
func (t *TradeType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseTradeType, t)
}

// PairInfo selects which section of pair metadata to return.
type PairInfo int

// Pair info constants.
const (
	PairInfoAll PairInfo = iota
	PairInfoLeverage
	PairInfoFees
	PairInfoMargin
)

// String returns the wire value of the pair info selector.
func (p PairInfo) String() string {
	switch p {
	case PairInfoAll:
		return "info"
	case PairInfoLeverage:
		return "leverage"
	case PairInfoFees:
		return "fees"
	case PairInfoMargin:
		return "margin"
	default:
		return ""
	}
}

// IsValid reports whether p is a declared selector.
func (p PairInfo) IsValid() bool { return p.String() != "" }

// ParsePairInfo parses "info", "leverage", "fees" or "margin".
func ParsePairInfo(v string) (PairInfo, error) {
	for p := PairInfoAll; p <= PairInfoMargin; p++ {
		if p.String() == strings.ToLower(strings.TrimSpace(v)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown pair info %q", v)
}

// MarshalJSON implements json.Marshaler for PairInfo.
func (p PairInfo) MarshalJSON() ([]byte, error) {
	return marshalEnum(p.String(), p.IsValid(), "pair info")
}

// UnmarshalJSON implements json.Unmarshaler for PairInfo.
func (p *PairInfo) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParsePairInfo, p)
}
