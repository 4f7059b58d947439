package domain

import (
	"errors"
	"fmt"
	"time"
)

// Code is a stable machine-readable error code. The UI branches on
// codes, never on message text.
type Code string

const (
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeValidation      Code = "validation_error"
	CodeConflict        Code = "conflict"
	CodeRateLimited     Code = "rate_limit_exceeded"
	CodeTokenExpired    Code = "token_expired"
	CodePaymentRequired Code = "payment_required"
	CodePolicyViolation Code = "policy_violation"
	CodeAPIError        Code = "api_error"
	CodePublishFailed   Code = "publish_failed"
	CodeNetworkError    Code = "network_error"
	CodeInternal        Code = "internal_error"
)

// Error carries a stable code, a human sentence for display and an
// optional Details value preserved for support diagnosis (e.g. the raw
// platform error message, or a preflight report). RetryAfter is set
// only for rate_limit_exceeded.
type Error struct {
	Code       Code
	Message    string
	Details    any
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// E constructs an Error with the given code and message.
func E(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the machine code from err, or internal_error when err
// is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
