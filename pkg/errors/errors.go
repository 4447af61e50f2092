// Package errors provides structured error types for the eleitos application.
//
// Errors carry a machine-readable [Code] so the CLI can tell a graceful
// "nothing to do" outcome (election or municipality not found) apart from a
// fatal one (invalid credentials) without string matching.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMunicipalityNotFound, "municipality %q not found in %s", name, uf)
//	if errors.Is(err, errors.ErrCodeMunicipalityNotFound) {
//	    // report and end the run
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeConfigMissing Code = "CONFIG_MISSING"

	// Not-found conditions. These end a run gracefully with no artifacts.
	ErrCodeElectionNotFound     Code = "ELECTION_NOT_FOUND"
	ErrCodeRegionMismatch       Code = "REGION_MISMATCH"
	ErrCodeMunicipalityNotFound Code = "MUNICIPALITY_NOT_FOUND"
	ErrCodeNoCandidates         Code = "NO_CANDIDATES"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Automation target and internal errors
	ErrCodeAutomation Code = "AUTOMATION_FAILED"
	ErrCodeInternal   Code = "INTERNAL_ERROR"
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

// IsNotFound reports whether err carries one of the not-found codes that end
// a run gracefully.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeElectionNotFound, ErrCodeRegionMismatch, ErrCodeMunicipalityNotFound, ErrCodeNoCandidates:
		return true
	}
	return false
}
