// Package errors provides standardized domain errors for the Bookshelf API.
//
// Errors carry a machine-readable code that the GraphQL layer reports in the
// error extensions, so clients can branch on "code" instead of parsing
// messages. User-input errors additionally carry the offending arguments.
//
// Usage:
//
//	// In services - return typed errors
//	if user == nil {
//	    return errors.Unauthenticated("not authenticated")
//	}
//
//	// In handlers/tests - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes reported in GraphQL error extensions.
const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeBadUserInput    Code = "BAD_USER_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

// Error is a domain error with a code, a message and optional argument context.
type Error struct {
	Code        Code           `json:"code"`
	Message     string         `json:"message"`
	InvalidArgs map[string]any `json:"invalidArgs,omitempty"`
	cause       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Extensions returns the GraphQL error extensions for this error.
// graph-gophers/graphql-go picks this up and attaches it to the error entry.
func (e *Error) Extensions() map[string]any {
	ext := map[string]any{"code": string(e.Code)}
	if len(e.InvalidArgs) > 0 {
		ext["invalidArgs"] = e.InvalidArgs
	}
	return ext
}

// Sentinels for errors.Is checks. Compared by code, not identity.
var (
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated, Message: "not authenticated"}
	ErrBadUserInput    = &Error{Code: CodeBadUserInput, Message: "bad user input"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal        = &Error{Code: CodeInternal, Message: "internal error"}
)

// Unauthenticated creates an authentication-required error.
func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// BadUserInput creates a user-input error.
func BadUserInput(msg string) *Error {
	return &Error{Code: CodeBadUserInput, Message: msg}
}

// BadUserInputWithArgs creates a user-input error carrying the offending
// arguments for diagnostics.
func BadUserInputWithArgs(msg string, args map[string]any) *Error {
	return &Error{Code: CodeBadUserInput, Message: msg, InvalidArgs: args}
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
