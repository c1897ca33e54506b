// Package errors provides structured error types for hovercard.
//
// Every failure that can reach a preview card is classified into one of a
// small set of codes:
//   - UNKNOWN_PROVIDER: no provider matched the link. This is a routing
//     outcome, not a failure; callers fall back to local extraction.
//   - NETWORK_ERROR: transport failure or non-2xx HTTP status ([NetworkError]).
//   - RATE_LIMITED: the provider reported an exhausted quota ([RateLimitedError]).
//   - PROVIDER_ERROR: the response did not have the expected shape.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownProvider, "no provider for %s", url)
//	if errors.Is(err, errors.ErrCodeUnknownProvider) {
//	    // fall back to a local synopsis
//	}
//
//	err := errors.Wrap(errors.ErrCodeProvider, cause, "github: decode response")
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidURL   Code = "INVALID_URL"

	ErrCodeUnknownProvider Code = "UNKNOWN_PROVIDER"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeProvider Code = "PROVIDER_ERROR"

	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// coded is implemented by the detail error types that carry their own code.
type coded interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a coded detail error
// with a matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// The outermost *Error wins; detail types ([NetworkError], [RateLimitedError])
// are consulted when no *Error is present. Returns "" for other errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
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
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// NetworkError describes a failed HTTP exchange. Status is 0 when the request
// never produced a response (DNS, connection refused, timeout).
type NetworkError struct {
	URL    string
	Status int
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}
		return "network error"
	}
	return fmt.Sprintf("network error: HTTP %d %s", e.Status, e.Reason)
}

// Unwrap returns the transport error, if any.
func (e *NetworkError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *NetworkError) Code() Code { return ErrCodeNetwork }

// NewStatusError builds a NetworkError for a non-2xx response.
// The reason phrase is taken from the status line when present, falling back
// to the standard text for the code.
func NewStatusError(url string, status int, statusLine string) *NetworkError {
	reason := strings.TrimSpace(strings.TrimPrefix(statusLine, fmt.Sprint(status)))
	if reason == "" {
		reason = http.StatusText(status)
	}
	return &NetworkError{URL: url, Status: status, Reason: reason}
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	Provider string    // Provider whose quota is exhausted
	Limit    int       // Request quota for the window, 0 if unknown
	ResetAt  time.Time // When the quota resets, zero if unknown
	Message  string    // Optional message returned by the API
}

// Error implements the error interface. The message always names the
// limiting condition so it can be shown to the user as-is.
func (e *RateLimitedError) Error() string {
	var b strings.Builder
	b.WriteString("rate limited")
	if e.Provider != "" {
		b.WriteString(": " + e.Provider + " API quota exhausted")
	}
	if e.Limit > 0 {
		fmt.Fprintf(&b, " (%d requests per window)", e.Limit)
	}
	if !e.ResetAt.IsZero() {
		fmt.Fprintf(&b, ", resets at %s", e.ResetAt.Local().Format("15:04:05"))
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
