// Package catalog exposes the Kraken operations to a tool host by name, with
// parameter descriptors and untyped argument decoding.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bytedance/sonic"

	"krakenbridge/pkg/core"
	"krakenbridge/pkg/exchange/kraken"
)

// Dispatcher sends a validated request for an operation. *kraken.KrakenExchange
// implements it.
type Dispatcher interface {
	Do(ctx context.Context, op core.Operation, req kraken.Request) (map[string]any, error)
}

// Param describes one host-facing parameter.
type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Operation is a named, described action the host can invoke.
type Operation struct {
	Name        string         `json:"name"`
	Op          core.Operation `json:"-"`
	Description string         `json:"description"`
	Private     bool           `json:"private"`
	Params      []Param        `json:"params"`

	// newRequest returns a request pre-filled with defaults, or nil for
	// operations without parameters.
	newRequest func() kraken.Request
}

var strict = sonic.Config{
	DisallowUnknownFields: true,
	UseNumber:             true,
}.Froze()

// Registry is a thread-safe set of operations bound to one dispatcher.
type Registry struct {
	mu         sync.RWMutex
	dispatcher Dispatcher
	operations map[string]*Operation
}

// NewRegistry creates an empty registry.
func NewRegistry(d Dispatcher) *Registry {
	return &Registry{
		dispatcher: d,
		operations: make(map[string]*Operation),
	}
}

// New creates a registry holding every Kraken operation.
func New(d Dispatcher) *Registry {
	r := NewRegistry(d)
	for _, op := range builtin() {
		r.Register(op)
	}
	return r
}

// Register adds op under its name. An operation with the same name is
// replaced.
func (r *Registry) Register(op *Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[op.Name] = op
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (*Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, exists := r.operations[name]
	if !exists {
		return nil, core.NewValidationError(core.ErrCodeUnknownOperation, "",
			fmt.Sprintf("operation %q not found", name))
	}
	return op, nil
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Operations returns the descriptors in declaration order.
func (r *Registry) Operations() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]Operation, 0, len(r.operations))
	for _, op := range r.operations {
		ops = append(ops, *op)
	}
	slices.SortFunc(ops, func(a, b Operation) int {
		return int(a.Op) - int(b.Op)
	})
	return ops
}

// Invoke decodes args into the operation's request and dispatches it.
// Unknown parameter names and values of the wrong shape are validation
// faults; nothing is sent in that case.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	op, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	req, err := op.decode(args)
	if err != nil {
		return nil, err
	}
	return r.dispatcher.Do(ctx, op.Op, req)
}

func (op *Operation) decode(args map[string]any) (kraken.Request, error) {
	if op.newRequest == nil {
		if len(args) > 0 {
			return nil, core.NewValidationError(core.ErrCodeInvalidParams, "",
				fmt.Sprintf("%s takes no parameters", op.Name))
		}
		return nil, nil
	}

	req := op.newRequest()
	if len(args) == 0 {
		return req, nil
	}
	data, err := sonic.Marshal(args)
	if err != nil {
		return nil, core.NewValidationError(core.ErrCodeInvalidParams, "", "encode arguments").WithCause(err)
	}
	if err := strict.Unmarshal(data, req); err != nil {
		return nil, core.NewValidationError(core.ErrCodeInvalidParams, "",
			fmt.Sprintf("invalid arguments for %s", op.Name)).WithCause(err)
	}
	return req, nil
}
