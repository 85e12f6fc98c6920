// Package errors provides structured errors with stable codes for the
// linking engine. Codes let callers and tests match on error category
// without string comparison.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Repository structure errors
	ErrRepoNotFound        ErrorCode = "REPO_NOT_FOUND"
	ErrSharedSourceMissing ErrorCode = "SHARED_SOURCE_MISSING"

	// FileSystem errors
	ErrLinkCreate     ErrorCode = "LINK_CREATE"
	ErrJunctionCreate ErrorCode = "JUNCTION_CREATE"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
)

// LinkError represents a structured error with code and details
type LinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface, matching by code
func (e *LinkError) Is(target error) bool {
	var targetErr *LinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail adds a detail key-value pair to the error
func (e *LinkError) WithDetail(key string, value interface{}) *LinkError {
	e.Details[key] = value
	return e
}

// New creates a new LinkError with the given code and message
func New(code ErrorCode, message string) *LinkError {
	return &LinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkError {
	return &LinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkError
func Wrap(err error, code ErrorCode, message string) *LinkError {
	if err == nil {
		return nil
	}
	return &LinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkError {
	if err == nil {
		return nil
	}
	return &LinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// IsCode reports whether err carries the given code anywhere in its
// chain.
func IsCode(err error, code ErrorCode) bool {
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code == code
	}
	return false
}
