package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Decimal is a validated decimal number kept in plain (non-exponent) notation.
// Monetary fields travel as Decimal so that no float rounding reaches the wire.
// The zero value is unset.
type Decimal struct {
	text string
}

// ParseDecimal parses s as a finite decimal.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("invalid decimal %q: not finite", s)
	}
	return Decimal{text: d.Text('f')}, nil
}

// MustDecimal is like ParseDecimal but panics on error. Intended for constants and tests.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecimal converts any numeric-like value to a Decimal.
// Floats are formatted with the shortest representation that round-trips.
func NewDecimal(v any) (Decimal, error) {
	switch val := v.(type) {
	case Decimal:
		if !val.IsSet() {
			return Decimal{}, fmt.Errorf("decimal is unset")
		}
		return val, nil
	case string:
		return ParseDecimal(val)
	case json.Number:
		return ParseDecimal(val.String())
	case int:
		return ParseDecimal(strconv.Itoa(val))
	case int32:
		return ParseDecimal(strconv.FormatInt(int64(val), 10))
	case int64:
		return ParseDecimal(strconv.FormatInt(val, 10))
	case uint:
		return ParseDecimal(strconv.FormatUint(uint64(val), 10))
	case uint32:
		return ParseDecimal(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return ParseDecimal(strconv.FormatUint(val, 10))
	case float32:
		return ParseDecimal(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case float64:
		return ParseDecimal(strconv.FormatFloat(val, 'f', -1, 64))
	case *apd.Decimal:
		if val == nil {
			return Decimal{}, fmt.Errorf("decimal is nil")
		}
		return ParseDecimal(val.Text('f'))
	default:
		return Decimal{}, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// IsSet reports whether the decimal holds a value.
func (d Decimal) IsSet() bool {
	return d.text != ""
}

// String returns the decimal in plain notation.
func (d Decimal) String() string {
	return d.text
}

// Sign returns -1, 0 or +1. An unset decimal reports 0.
func (d Decimal) Sign() int {
	if !d.IsSet() {
		return 0
	}
	v, _, err := apd.NewFromString(d.text)
	if err != nil {
		return 0
	}
	return v.Sign()
}

// MarshalJSON encodes the decimal as a JSON string.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.text)), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string. Numbers are parsed
// from their literal text, never through float64.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*d = Decimal{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	v, err := ParseDecimal(raw)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Price is a limit or trigger price. Besides plain decimals it accepts the
// exchange's relative forms: a leading "+", "-" or "#" offset marker and a
// trailing "%" for percentage offsets.
type Price struct {
	prefix  string
	value   Decimal
	percent bool
}

// ParsePrice parses an absolute or relative price expression.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	var p Price
	if s != "" && strings.ContainsRune("+-#", rune(s[0])) {
		p.prefix = s[:1]
		s = s[1:]
	}
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		p.percent = true
		s = rest
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return Price{}, fmt.Errorf("invalid price %q", p.prefix+s)
	}
	v, err := ParseDecimal(s)
	if err != nil {
		return Price{}, err
	}
	p.value = v
	return p, nil
}

// NewPrice converts a price expression or any numeric-like value to a Price.
func NewPrice(v any) (Price, error) {
	switch val := v.(type) {
	case Price:
		return val, nil
	case string:
		return ParsePrice(val)
	}
	d, err := NewDecimal(v)
	if err != nil {
		return Price{}, err
	}
	return Price{value: d}, nil
}

// MustPrice is like ParsePrice but panics on error.
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsSet reports whether the price holds a value.
func (p Price) IsSet() bool {
	return p.value.IsSet()
}

// IsRelative reports whether the price is an offset rather than an absolute level.
func (p Price) IsRelative() bool {
	return p.prefix != "" || p.percent
}

// String returns the wire form of the price.
func (p Price) String() string {
	if !p.IsSet() {
		return ""
	}
	s := p.prefix + p.value.String()
	if p.percent {
		s += "%"
	}
	return s
}

// MarshalJSON encodes the price as a JSON string.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON accepts a JSON number or a price expression string.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = Price{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	d, err := ParseDecimal(raw)
	if err != nil {
		return err
	}
	*p = Price{value: d}
	return nil
}

// List is a set of identifiers such as assets or pairs, sent comma-joined.
type List []string

// String joins the non-empty entries with commas.
func (l List) String() string {
	parts := make([]string, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}

// UnmarshalJSON accepts either "A,B" or ["A","B"].
func (l *List) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := sonic.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = strings.Split(s, ",")
	return nil
}

// Bound is one end of a time range: a unix timestamp in seconds or an
// order/trade id.
type Bound string

// BoundTime returns a Bound for t as unix seconds.
func BoundTime(t time.Time) Bound {
	return Bound(strconv.FormatInt(t.Unix(), 10))
}

// String returns the wire form.
func (b Bound) String() string {
	return string(b)
}

// UnmarshalJSON accepts a JSON number (timestamp) or string (timestamp or id).
func (b *Bound) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Bound(strings.TrimSpace(s))
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("invalid bound %s", raw)
	}
	*b = Bound(raw)
	return nil
}
