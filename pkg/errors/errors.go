// Package errors provides structured error types for the segviz application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that point at the offending document key
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two groups. Document codes describe why a scene manifest
// or colormap was rejected (MALFORMED_DOCUMENT, TYPE_MISMATCH, ...) and
// always travel with the path of the offending key. Infrastructure codes
// cover everything around the loader (NOT_FOUND, NETWORK_ERROR, ...).
//
// # Usage
//
//	err := errors.NewAt(errors.ErrCodeTypeMismatch, "tissues.opacity.skin", "expected float, got %q", v)
//	if errors.Is(err, errors.ErrCodeTypeMismatch) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document validation errors
	ErrCodeMalformedDocument     Code = "MALFORMED_DOCUMENT"
	ErrCodeMissingRequiredField  Code = "MISSING_REQUIRED_FIELD"
	ErrCodeUnknownTissueRef      Code = "UNKNOWN_TISSUE_REFERENCE"
	ErrCodeTypeMismatch          Code = "TYPE_MISMATCH"
	ErrCodeDuplicateIndex        Code = "DUPLICATE_INDEX"
	ErrCodeMissingParameterValue Code = "MISSING_PARAMETER_VALUE"
	ErrCodeValueOutOfRange       Code = "VALUE_OUT_OF_RANGE"
	ErrCodeUnknownColor          Code = "UNKNOWN_COLOR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidFigure Code = "INVALID_FIGURE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeSceneNotFound Code = "SCENE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code, an optional document key path,
// and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Path    string // Dotted key path into the source document (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
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

// NewAt creates a new Error anchored at a document key path.
// The path uses dotted notation, e.g. "tissues.opacity.skin".
func NewAt(code Code, path, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Path:    path,
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

// GetPath extracts the document key path from an error, if available.
// Returns empty string if the error is not an *Error or carries no path.
func GetPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (prefixed with the key path when
// present) without the code. For other errors, returns the error string
// as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Path, e.Message)
		}
		return e.Message
	}
	return err.Error()
}
