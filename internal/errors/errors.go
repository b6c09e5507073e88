// Package errors provides the coded error type used across templer. Codes are
// stable strings so callers and tests can branch on the kind of failure
// without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a category of failure.
type ErrorCode string

const (
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Lookup errors
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrStructureNotFound ErrorCode = "STRUCTURE_NOT_FOUND"
	ErrTemplateCycle     ErrorCode = "TEMPLATE_CYCLE"
	ErrDuplicateName     ErrorCode = "DUPLICATE_NAME"

	// Input errors
	ErrSyntax             ErrorCode = "SYNTAX"
	ErrValidation         ErrorCode = "VALIDATION"
	ErrMissingVars        ErrorCode = "MISSING_VARS"
	ErrInvalidProjectName ErrorCode = "INVALID_PROJECT_NAME"
	ErrAborted            ErrorCode = "ABORTED"

	// Configuration errors
	ErrConfig          ErrorCode = "CONFIG"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Output errors
	ErrRender    ErrorCode = "RENDER"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrLifecycle ErrorCode = "LIFECYCLE"
)

// TemplerError is a structured error with a code and optional details.
type TemplerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TemplerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TemplerError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a TemplerError with the same code.
func (e *TemplerError) Is(target error) bool {
	var targetErr *TemplerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// UserMessage returns the message without the code prefix, followed by the
// wrapped error if there is one. This is what the CLI prints after "ERROR: ".
func (e *TemplerError) UserMessage() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// New creates a new TemplerError with the given code and message
func New(code ErrorCode, message string) *TemplerError {
	return &TemplerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TemplerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TemplerError {
	return &TemplerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TemplerError. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &TemplerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &TemplerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TemplerError) WithDetail(key string, value interface{}) *TemplerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var te *TemplerError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// GetErrorCode returns the code of the outermost TemplerError in the chain,
// or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var te *TemplerError
	if errors.As(err, &te) {
		return te.Code
	}
	return ErrUnknown
}

// Message returns the user-facing text of err: the UserMessage of a
// TemplerError, or err.Error() for anything else.
func Message(err error) string {
	var te *TemplerError
	if errors.As(err, &te) {
		return te.UserMessage()
	}
	return err.Error()
}
