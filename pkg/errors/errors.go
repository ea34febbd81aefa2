// Package errors provides structured error types for ontograph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and query service
//   - Machine-readable error codes for programmatic handling
//   - Non-fatal diagnostics (malformed axiom shapes) collected as warnings
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MALFORMED_*: Axiom shapes the extractor skips
//   - AMBIGUOUS_* / UNKNOWN_*: Identifier resolution failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownEntity, "no entity named %q", ref)
//	if errors.Is(err, errors.ErrCodeUnknownEntity) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"

	// Axiom shapes the extractor cannot turn into edges. Never fatal.
	ErrCodeMalformedAxiom Code = "MALFORMED_AXIOM"

	// Identifier resolution errors
	ErrCodeUnknownEntity       Code = "UNKNOWN_ENTITY"
	ErrCodeAmbiguousIdentifier Code = "AMBIGUOUS_IDENTIFIER"
	ErrCodeFileNotFound        Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for the outermost coded error.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Typed errors such as [AmbiguousError] report their code through a Code
// method. Returns empty string for any other error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c interface{ Code() Code }
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
		return e.Message
	}
	return err.Error()
}

// AmbiguousError is returned when a short identifier resolves to more than
// one entity. Candidates holds the full identifiers of every match so callers
// can surface them; the lookup never picks one on its own.
type AmbiguousError struct {
	Ref        string
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: %q matches %d entities: %s",
		ErrCodeAmbiguousIdentifier, e.Ref, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Code returns the error code for this error type.
func (e *AmbiguousError) Code() Code {
	return ErrCodeAmbiguousIdentifier
}

// AsAmbiguous extracts an *AmbiguousError from err's chain.
func AsAmbiguous(err error) (*AmbiguousError, bool) {
	var e *AmbiguousError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
