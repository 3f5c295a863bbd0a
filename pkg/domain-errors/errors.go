// Package domainerrors carries coded errors across service boundaries.
//
// Services return *Error values so transports can translate a stable Code into
// a status without string matching. Stores should not return these directly;
// they return sentinel errors (pkg/platform/sentinel) which services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable reason identifier.
type Code string

const (
	// CodeValidation covers malformed or out-of-range input: empty or oversized
	// strings, bad identifier formats, non-positive prices, underage accounts.
	CodeValidation Code = "validation_error"
	// CodeForbidden covers missing roles, non-owners and callers absent from an allow-list.
	CodeForbidden Code = "forbidden"
	// CodeInvalidState covers operations that conflict with the current record state.
	CodeInvalidState Code = "invalid_state"
	CodeNotFound     Code = "not_found"
	// CodeResourceLimit covers bounded collections that are full.
	CodeResourceLimit Code = "resource_limit"

	CodeUnauthorized Code = "unauthorized"
	CodeBadRequest   Code = "bad_request"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Cause is optional and never exposed to clients.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a coded error without an underlying cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Cause: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message for err. Internal errors never
// leak their cause.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
