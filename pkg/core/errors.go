package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorType represents the category of a bridge failure.
type ErrorType int

// Error type constants categorize failures for proper handling by the caller.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfiguration indicates missing or malformed credentials or settings.
	// Configuration errors surface before any network call and are never retryable.
	ErrorTypeConfiguration
	// ErrorTypeValidation indicates caller-supplied parameters violate a precondition.
	// Validation errors are raised before any request is sent.
	ErrorTypeValidation
	// ErrorTypeTransport indicates a network, timeout or non-2xx HTTP failure.
	ErrorTypeTransport
	// ErrorTypeExchange indicates a well-formed envelope carrying a non-empty error list.
	ErrorTypeExchange
	// ErrorTypeProtocol indicates a response lacking the expected envelope shape.
	ErrorTypeProtocol
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "CONFIGURATION"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeTransport:
		return "TRANSPORT"
	case ErrorTypeExchange:
		return "EXCHANGE"
	case ErrorTypeProtocol:
		return "PROTOCOL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the type by name.
func (t ErrorType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Sentinel errors for common error conditions.
var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrCircuitBreakerOpen is returned when circuit breaker is open.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	// ErrNoCredentials is returned when no API credentials are configured.
	ErrNoCredentials = errors.New("no credentials configured")
)

// Error represents a structured failure produced anywhere in the request pipeline.
// It provides detailed context for debugging and error handling.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// Code is the stable, machine-readable error identifier.
	Code string `json:"code"`
	// StatusCode is the HTTP status code from the response, zero when no response was read.
	StatusCode int `json:"status_code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Messages holds the exchange's own error strings verbatim.
	Messages []string `json:"messages,omitempty"`
	// Path is the endpoint path the failure relates to.
	Path string `json:"path,omitempty"`
	// Err is the underlying cause, if any.
	Err error `json:"-"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
// It returns a formatted string with the error type, status code, code and message.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[kraken] ")
	b.WriteString(e.Type.String())
	switch {
	case e.StatusCode != 0 && e.Code != "":
		fmt.Fprintf(&b, " (%d/%s)", e.StatusCode, e.Code)
	case e.Code != "":
		fmt.Fprintf(&b, " (%s)", e.Code)
	case e.StatusCode != 0:
		fmt.Fprintf(&b, " (%d)", e.StatusCode)
	}
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithPath sets the endpoint path and returns the error for chaining.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithStatus sets the HTTP status code and returns the error for chaining.
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// WithCause sets the underlying cause and returns the error for chaining.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// NewError creates a new Error with the specified details.
// The timestamp is automatically set to the current time.
func NewError(errorType ErrorType, code ErrorCode, message string) *Error {
	return &Error{
		Type:      errorType,
		Code:      string(code),
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewConfigurationError creates a configuration fault.
func NewConfigurationError(code ErrorCode, message string) *Error {
	return NewError(ErrorTypeConfiguration, code, message)
}

// NewValidationError creates a validation fault for the named parameter.
func NewValidationError(code ErrorCode, field, message string) *Error {
	if field != "" {
		message = field + ": " + message
	}
	return NewError(ErrorTypeValidation, code, message)
}

// NewTransportError creates a transport fault wrapping the underlying cause.
func NewTransportError(code ErrorCode, message string, cause error) *Error {
	return NewError(ErrorTypeTransport, code, message).WithCause(cause)
}

// NewExchangeError creates an exchange fault carrying the exchange's messages verbatim.
// The message is the list joined with "; ".
func NewExchangeError(code ErrorCode, messages []string) *Error {
	e := NewError(ErrorTypeExchange, code, strings.Join(messages, "; "))
	e.Messages = append([]string(nil), messages...)
	return e
}

// NewProtocolError creates a protocol fault for a malformed response.
func NewProtocolError(message string) *Error {
	return NewError(ErrorTypeProtocol, ErrCodeMalformedEnvelope, message)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsConfigurationError returns true if the error is a configuration fault.
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}

// IsValidationError returns true if the error is a parameter validation fault.
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsTransportError returns true if the error is a network, timeout or HTTP status fault.
// Whether to retry is the caller's decision.
func IsTransportError(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// IsExchangeError returns true if the exchange reported an error in a well-formed envelope.
func IsExchangeError(err error) bool {
	return isType(err, ErrorTypeExchange)
}

// IsProtocolError returns true if the response did not have the expected envelope shape.
func IsProtocolError(err error) bool {
	return isType(err, ErrorTypeProtocol)
}

// IsTimeoutError returns true if the request exceeded its deadline.
func IsTimeoutError(err error) bool {
	return IsErrorCode(err, ErrCodeTimeout)
}

// IsRateLimitError returns true if the exchange rejected the call for exceeding its rate limit.
func IsRateLimitError(err error) bool {
	return IsErrorCode(err, ErrCodeRateLimit)
}

// IsTerminalError returns true if the error indicates a terminal condition.
// Terminal errors should not be retried as they will not succeed.
func IsTerminalError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Type {
	case ErrorTypeConfiguration, ErrorTypeValidation, ErrorTypeProtocol:
		return true
	case ErrorTypeExchange:
		switch ErrorCode(e.Code) {
		case ErrCodeInsufficientFunds, ErrCodeInvalidOrder, ErrCodeUnknownOrder,
			ErrCodeInvalidArguments, ErrCodeAuth:
			return true
		}
	}
	return false
}
