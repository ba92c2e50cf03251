// Package errors provides structured error types for stenoboard.
//
// Every layout load reports failure through an [*Error] whose [Code] names
// the failure class, so callers can log it and fall back without string
// matching:
//   - IO_ERROR, FILE_NOT_FOUND, RESOURCE_NOT_FOUND: the source could not be read
//   - INVALID_JSON: the source is not a JSON document
//   - SCHEMA_VIOLATION: the document does not match the layout schema
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSystem, "unknown system: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidSystem) {
//	    // Handle unknown system
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout load errors
	ErrCodeInvalidJSON       Code = "INVALID_JSON"
	ErrCodeSchemaViolation   Code = "SCHEMA_VIOLATION"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
	ErrCodeIO                Code = "IO_ERROR"
	ErrCodeInvalidColor      Code = "INVALID_COLOR"
	ErrCodeInvalidLayoutPath Code = "INVALID_LAYOUT_PATH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSystem Code = "INVALID_SYSTEM"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
		return e.Message
	}
	return err.Error()
}

// IsLoadFailure reports whether err belongs to the layout load taxonomy:
// an unreadable source, malformed JSON, or a schema violation.
func IsLoadFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeIO, ErrCodeFileNotFound, ErrCodeResourceNotFound,
		ErrCodeInvalidJSON, ErrCodeSchemaViolation:
		return true
	}
	return false
}

// IsNotExist reports whether err indicates a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Cause returns the error an *Error wraps, or nil.
func Cause(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	return nil
}
