// Package mcpserver publishes the operation catalog as Model Context Protocol
// tools. Every registered operation becomes one tool whose input schema is
// derived from its parameter descriptors; calls go through Registry.Invoke.
package mcpserver

import (
	"context"
	"errors"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"krakenbridge/pkg/catalog"
	"krakenbridge/pkg/core"
)

// Name and Version identify the server to MCP clients.
const (
	Name    = "krakenbridge"
	Version = "1.0.0"
)

// argsAPI keeps numeric arguments as their literal text so large integers
// and decimals reach the request decoder unchanged.
var argsAPI = sonic.Config{UseNumber: true}.Froze()

// New returns a server exposing every operation in reg.
func New(reg *catalog.Registry, logger zerolog.Logger) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	for _, op := range reg.Operations() {
		s.AddTool(Tool(op), handler(reg, op.Name, logger))
	}
	return s
}

// Serve runs the server over t until the client disconnects or ctx is done.
func Serve(ctx context.Context, reg *catalog.Registry, t mcp.Transport, logger zerolog.Logger) error {
	logger.Info().Int("tools", len(reg.Names())).Msg("mcp server starting")
	err := New(reg, logger).Run(ctx, t)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Tool describes op as an MCP tool.
func Tool(op catalog.Operation) *mcp.Tool {
	desc := op.Description
	if op.Private {
		desc += " Requires API credentials."
	}
	return &mcp.Tool{
		Name:        op.Name,
		Description: desc,
		InputSchema: InputSchema(op.Params),
	}
}

// InputSchema converts parameter descriptors into an object schema that
// rejects unknown properties.
func InputSchema(params []catalog.Param) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema, len(params)),
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
	for _, p := range params {
		s.Properties[p.Name] = paramSchema(p)
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

func paramSchema(p catalog.Param) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: p.Description}

	switch p.Type {
	case "boolean":
		s.Type = "boolean"
	case "integer":
		s.Type = "integer"
	case "decimal", "price":
		// Strings keep full precision; numbers are accepted for convenience.
		s.Types = []string{"string", "number"}
	case "bound":
		s.Types = []string{"string", "integer"}
	case "list":
		s.Types = []string{"string", "array"}
		s.Items = &jsonschema.Schema{Type: "string"}
	default:
		s.Type = "string"
	}

	for _, e := range p.Enum {
		if s.Type == "integer" {
			if n, err := strconv.Atoi(e); err == nil {
				s.Enum = append(s.Enum, n)
				continue
			}
		}
		s.Enum = append(s.Enum, e)
	}

	if p.Default != nil {
		if raw, err := sonic.Marshal(p.Default); err == nil {
			s.Default = raw
		}
	}
	return s
}

// handler invokes one operation. Faults are returned as tool results with
// IsError set so the model sees the classified error; the protocol error
// path is reserved for failures of the server itself.
func handler(reg *catalog.Registry, name string, logger zerolog.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := argsAPI.Unmarshal(req.Params.Arguments, &args); err != nil {
				return faultResult(core.NewValidationError(core.ErrCodeInvalidParams, "",
					"arguments must be a JSON object").WithCause(err))
			}
		}

		logger.Debug().Str("tool", name).Msg("call")
		result, err := reg.Invoke(ctx, name, args)
		if err != nil {
			logger.Warn().Err(err).Str("tool", name).Msg("call failed")
			return faultResult(err)
		}

		text, err := sonic.ConfigStd.MarshalToString(result)
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: text}},
			StructuredContent: result,
		}, nil
	}
}

func faultResult(err error) (*mcp.CallToolResult, error) {
	var payload any = map[string]string{"message": err.Error()}
	var ce *core.Error
	if errors.As(err, &ce) {
		payload = ce
	}
	text, merr := sonic.ConfigStd.MarshalToString(map[string]any{"error": payload})
	if merr != nil {
		return nil, merr
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil
}
