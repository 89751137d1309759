package core

import "errors"

// ErrorCode represents a stable error identifier.
// Error codes provide a machine-readable way to identify specific error conditions.
type ErrorCode string

// Error code constants.
const (
	// Configuration errors
	ErrCodeNoCredentials ErrorCode = "NO_CREDENTIALS"
	ErrCodeInvalidSecret ErrorCode = "INVALID_SECRET"
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Validation errors
	ErrCodeInvalidParams     ErrorCode = "INVALID_PARAMS"
	ErrCodeMissingIdentifier ErrorCode = "MISSING_IDENTIFIER"
	ErrCodeNothingToAmend    ErrorCode = "NOTHING_TO_AMEND"
	ErrCodeUnknownOperation  ErrorCode = "UNKNOWN_OPERATION"

	// Transport errors
	ErrCodeNetwork        ErrorCode = "NETWORK_ERROR"
	ErrCodeTimeout        ErrorCode = "TIMEOUT"
	ErrCodeHTTPStatus     ErrorCode = "HTTP_STATUS"
	ErrCodeCircuitBreaker ErrorCode = "CIRCUIT_BREAKER_OPEN"
	ErrCodeClientClosed   ErrorCode = "CLIENT_CLOSED"

	// Exchange-reported errors, classified from the envelope's error strings.
	ErrCodeRateLimit          ErrorCode = "RATE_LIMIT"
	ErrCodeInvalidNonce       ErrorCode = "INVALID_NONCE"
	ErrCodeAuth               ErrorCode = "AUTH_ERROR"
	ErrCodeInsufficientFunds  ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeInvalidOrder       ErrorCode = "INVALID_ORDER"
	ErrCodeUnknownOrder       ErrorCode = "UNKNOWN_ORDER"
	ErrCodeInvalidArguments   ErrorCode = "INVALID_ARGUMENTS"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeExchange           ErrorCode = "EXCHANGE_ERROR"

	// Protocol errors
	ErrCodeMalformedEnvelope ErrorCode = "MALFORMED_ENVELOPE"
)

// IsErrorCode checks if the error matches the specified error code.
// It extracts the pipeline error and compares its code field against the provided ErrorCode.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return ErrorCode(e.Code) == code
	}
	return false
}
