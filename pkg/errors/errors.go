// Package errors provides structured error types for blocksnap.
//
// The drag engine distinguishes three kinds of failure:
//   - INVARIANT: a caller broke the drag protocol (a second subtree on an
//     occupied drag surface, a marker still linked after teardown, two
//     preview modalities at once). These are fatal; the session must not be
//     reused because continuing would corrupt the permanent graph.
//   - MISSING_STRUCTURE: a marker cloned from a source block lacks an input
//     or field the source has. This points at a malformed block definition.
//   - everything else: input, lookup and configuration problems reported to
//     CLI and API callers.
//
// Benign conditions (hiding a preview that is not shown, re-showing the
// active target) are not errors at all; the engine logs and ignores them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvariant, "drag surface already holds %s", id)
//	if errors.Is(err, errors.ErrCodeInvariant) {
//	    // abandon the session
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Protocol and structure violations (fatal for a drag session)
	ErrCodeInvariant        Code = "INVARIANT"
	ErrCodeMissingStructure Code = "MISSING_STRUCTURE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidScenario Code = "INVALID_SCENARIO"
	ErrCodeUnknownType     Code = "UNKNOWN_BLOCK_TYPE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Invariant is shorthand for New(ErrCodeInvariant, ...).
func Invariant(format string, args ...any) *Error {
	return New(ErrCodeInvariant, format, args...)
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

// IsFatal reports whether err signals a broken drag protocol or a malformed
// block definition, after which a drag session must be abandoned.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvariant, ErrCodeMissingStructure:
		return true
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
		return e.Message
	}
	return err.Error()
}
