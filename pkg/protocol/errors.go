package protocol

import "fmt"

// ErrorCode is a standardized error code exchanged between SRP peers.
type ErrorCode string

// Handshake error codes.
const (
	// ErrCodeAuthenticationFailed indicates a proof mismatch. The code
	// deliberately does not reveal which input was wrong.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeProtocolViolation indicates a malformed or degenerate
	// handshake value (zero ephemeral, zero scrambling parameter,
	// out-of-order message).
	ErrCodeProtocolViolation ErrorCode = "PROTOCOL_VIOLATION"
	// ErrCodeUnknownAccount indicates no verifier exists for the identity.
	ErrCodeUnknownAccount ErrorCode = "UNKNOWN_ACCOUNT"
	// ErrCodeInvalidRequest indicates an undecodable message payload.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeConfigurationError indicates the parties disagree on group
	// parameters or hash policy.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
)

// ErrorResponse is a standardized handshake error message.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{Code: code, Message: message}
}

// NewAuthenticationFailedError creates the uniform failure reply. All
// mismatches map to the same message so a failed attempt leaks nothing
// about which value disagreed.
func NewAuthenticationFailedError() *ErrorResponse {
	return NewError(ErrCodeAuthenticationFailed, "Authentication failed")
}

// NewProtocolViolationError creates a protocol violation reply.
func NewProtocolViolationError(details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    ErrCodeProtocolViolation,
		Message: "Handshake aborted",
		Details: details,
	}
}
