// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and presentation collaborators map
// the stable machine-readable codes to whatever surface they render.
package apperr

import (
	"errors"
	"fmt"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindParse indicates malformed or ambiguous raw input (user-correctable).
	KindParse
	// KindInvalidArgument indicates bad pagination or malformed options (caller bug).
	KindInvalidArgument
	// KindNotFound indicates the targeted record is absent from the repository.
	KindNotFound
	// KindStorage indicates an underlying persistence failure.
	KindStorage
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Code returns the stable machine-readable identifier for the kind.
func (k Kind) Code() string {
	switch k {
	case KindParse:
		return "parse_error"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage_error"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Error is a domain error with a typed Kind.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the stable machine-readable identifier for this error.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// Parse creates a parse error for malformed raw input.
func Parse(message string) *Error {
	return New(KindParse, message)
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Storage creates a storage error wrapping the underlying failure.
func Storage(message string, err error) *Error {
	return Wrap(KindStorage, message, err)
}

// Internal creates an internal error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// CodeOf returns the stable code for an error, "unknown" for untyped errors.
func CodeOf(err error) string {
	return GetKind(err).Code()
}
