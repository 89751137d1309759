package kraken

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"krakenbridge/pkg/core"
)

// Normalizer turns a response body into the envelope's result mapping or a
// typed fault. It never reshapes the result.
type Normalizer struct {
	api sonic.API
}

// NewNormalizer returns a Normalizer that keeps JSON numbers as json.Number,
// so prices and volumes reach the caller exactly as sent.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		api: sonic.Config{UseNumber: true}.Froze(),
	}
}

// Normalize applies the envelope rules:
//   - body must be a JSON object with an "error" list of strings;
//   - a non-empty error list is an exchange fault, whatever "result" holds;
//   - otherwise "result" must be present, non-null and an object.
func (n *Normalizer) Normalize(body []byte) (map[string]any, error) {
	var raw any
	if err := n.api.Unmarshal(body, &raw); err != nil {
		return nil, core.NewProtocolError("response body is not valid JSON").WithCause(err)
	}

	envelope, ok := raw.(map[string]any)
	if !ok {
		return nil, core.NewProtocolError(fmt.Sprintf("response is %s, want an object", jsonKind(raw)))
	}

	errField, ok := envelope["error"]
	if !ok {
		return nil, core.NewProtocolError(`envelope has no "error" field`)
	}
	list, ok := errField.([]any)
	if !ok {
		return nil, core.NewProtocolError(fmt.Sprintf(`envelope "error" is %s, want a list`, jsonKind(errField)))
	}

	if len(list) > 0 {
		messages := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, core.NewProtocolError(fmt.Sprintf(`envelope "error" holds %s, want strings`, jsonKind(item)))
			}
			messages = append(messages, s)
		}
		return nil, core.NewExchangeError(ClassifyErrors(messages), messages)
	}

	result, ok := envelope["result"]
	if !ok || result == nil {
		return nil, core.NewProtocolError(`envelope has an empty "error" list but no "result"`)
	}
	mapping, ok := result.(map[string]any)
	if !ok {
		return nil, core.NewProtocolError(fmt.Sprintf(`envelope "result" is %s, want an object`, jsonKind(result)))
	}
	return mapping, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}

// errorPrefixes maps Kraken error strings to codes. Longer, more specific
// prefixes come first.
var errorPrefixes = []struct {
	prefix string
	code   core.ErrorCode
}{
	{"EAPI:Rate limit exceeded", core.ErrCodeRateLimit},
	{"EOrder:Rate limit exceeded", core.ErrCodeRateLimit},
	{"EGeneral:Too many requests", core.ErrCodeRateLimit},
	{"EAPI:Invalid nonce", core.ErrCodeInvalidNonce},
	{"EAPI:Invalid key", core.ErrCodeAuth},
	{"EAPI:Invalid signature", core.ErrCodeAuth},
	{"EAPI:Bad request", core.ErrCodeInvalidArguments},
	{"EGeneral:Permission denied", core.ErrCodeAuth},
	{"EGeneral:Invalid arguments", core.ErrCodeInvalidArguments},
	{"EOrder:Insufficient funds", core.ErrCodeInsufficientFunds},
	{"EOrder:Unknown order", core.ErrCodeUnknownOrder},
	{"EOrder:", core.ErrCodeInvalidOrder},
	{"EService:", core.ErrCodeServiceUnavailable},
}

// ClassifyErrors picks a code for an exchange error list from its first
// recognised message.
func ClassifyErrors(messages []string) core.ErrorCode {
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		for _, p := range errorPrefixes {
			if strings.HasPrefix(msg, p.prefix) {
				return p.code
			}
		}
	}
	return core.ErrCodeExchange
}
