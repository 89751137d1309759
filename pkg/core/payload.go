package core

import (
	"net/url"
	"strconv"
	"strings"
)

// Payload is an ordered mapping from field name to string value.
// Insertion order is the serialization order, so the encoded body is
// deterministic for a given sequence of Set calls.
type Payload struct {
	keys   []string
	values map[string]string
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]string)}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (p *Payload) Set(key, value string) *Payload {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// SetInt stores a base-10 integer.
func (p *Payload) SetInt(key string, value int64) *Payload {
	return p.Set(key, strconv.FormatInt(value, 10))
}

// SetBool stores "true" or "false".
func (p *Payload) SetBool(key string, value bool) *Payload {
	return p.Set(key, strconv.FormatBool(value))
}

// SetDecimal stores a decimal in plain notation.
func (p *Payload) SetDecimal(key string, value Decimal) *Payload {
	return p.Set(key, value.String())
}

// SetPrice stores a price expression.
func (p *Payload) SetPrice(key string, value Price) *Payload {
	return p.Set(key, value.String())
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Payload) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the field names in serialization order.
func (p *Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of fields.
func (p *Payload) Len() int {
	return len(p.keys)
}

// Merge copies every field of other that is not already present, in other's order.
func (p *Payload) Merge(other *Payload) *Payload {
	if other == nil {
		return p
	}
	for _, k := range other.keys {
		if !p.Has(k) {
			p.Set(k, other.values[k])
		}
	}
	return p
}

// Encode serializes the payload as an application/x-www-form-urlencoded body
// in insertion order.
func (p *Payload) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

// Values converts the payload to url.Values for use as a query string.
func (p *Payload) Values() url.Values {
	v := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		v.Set(k, p.values[k])
	}
	return v
}

// SetOptional applies the present-means-include rule: when o holds a value it
// is formatted and stored under key, otherwise the payload is left untouched.
// Formatted empty strings are never sent.
func SetOptional[T any](p *Payload, key string, o Optional[T], format func(T) string) *Payload {
	v, ok := o.Get()
	if !ok {
		return p
	}
	s := format(v)
	if s == "" {
		return p
	}
	return p.Set(key, s)
}

// FormatInt formats an int64 for SetOptional.
func FormatInt(v int64) string { return strconv.FormatInt(v, 10) }

// FormatBool formats a bool for SetOptional.
func FormatBool(v bool) string { return strconv.FormatBool(v) }

// FormatString is the identity formatter for SetOptional.
func FormatString(v string) string { return v }
