// Package errors provides structured error types for pypeek.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library packages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names one failure class of the listing pipeline:
//   - NOT_FOUND: the package index has no such package or version
//   - MALFORMED_RESPONSE: a response body could not be decoded
//   - STATS_UNAVAILABLE: the statistics service failed with a non-404 status
//   - INVENTORY_UNAVAILABLE: the host package manager could not be run or parsed
//   - NETWORK_ERROR: transport failures and unexpected HTTP statuses
//   - INVALID_INPUT: bad arguments (unknown sort order, filter token, ...)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown order: %s", order)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
//
// Every *Error also matches the package sentinels under the standard
// library's errors.Is, so callers can write:
//
//	if stderrors.Is(err, errors.ErrNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeNotFound             Code = "NOT_FOUND"
	ErrCodeMalformedResponse    Code = "MALFORMED_RESPONSE"
	ErrCodeStatsUnavailable     Code = "STATS_UNAVAILABLE"
	ErrCodeInventoryUnavailable Code = "INVENTORY_UNAVAILABLE"
	ErrCodeNetwork              Code = "NETWORK_ERROR"
)

// Sentinels for use with the standard library's errors.Is.
// They match any *Error carrying the same code.
var (
	ErrInvalidInput         = &Error{Code: ErrCodeInvalidInput, Message: "invalid input"}
	ErrNotFound             = &Error{Code: ErrCodeNotFound, Message: "resource not found"}
	ErrMalformedResponse    = &Error{Code: ErrCodeMalformedResponse, Message: "malformed response"}
	ErrStatsUnavailable     = &Error{Code: ErrCodeStatsUnavailable, Message: "download statistics unavailable"}
	ErrInventoryUnavailable = &Error{Code: ErrCodeInventoryUnavailable, Message: "package inventory unavailable"}
	ErrNetwork              = &Error{Code: ErrCodeNetwork, Message: "network error"}
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
