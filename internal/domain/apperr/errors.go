// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap storage and validation failures into one of these kinds; the
// HTTP layer maps kinds to status codes without inspecting anything deeper.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation             Kind = "VALIDATION_ERROR"
	KindNotFound               Kind = "NOT_FOUND"
	KindDuplicateKey           Kind = "DUPLICATE_KEY"
	KindInvalidFarmerReference Kind = "INVALID_FARMER_REFERENCE"
	KindStorage                Kind = "STORAGE_ERROR"
)

// Error is a classified application error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Validation builds a client-error for a schema/shape violation.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds an error for a missing document.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Duplicate builds an error for a unique-constraint violation.
func Duplicate(message string, cause error) *Error {
	return &Error{Kind: KindDuplicateKey, Message: message, cause: cause}
}

// InvalidFarmerReference flags a crop whose embedded farmer snapshot fails
// identifier-shape validation.
func InvalidFarmerReference(message string) *Error {
	return &Error{Kind: KindInvalidFarmerReference, Message: message}
}

// Storage wraps an unexpected persistence failure. The cause is logged but
// never serialized to clients.
func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

// KindOf extracts the Kind of err, or KindStorage when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// MessageOf extracts the client-safe message of err. Unclassified errors get a
// generic message so internal storage detail never leaks.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal storage error"
}
