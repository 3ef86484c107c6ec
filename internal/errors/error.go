package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// StickyError is a structured error with an explanation and a fix hint.
type StickyError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StickyError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StickyError) Unwrap() error {
	return e.Wrapped
}

// Is matches another StickyError with the same code.
func (e *StickyError) Is(target error) bool {
	t, ok := target.(*StickyError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *StickyError) WithDetail(d string) *StickyError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *StickyError) WithDetailf(format string, args ...any) *StickyError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StickyError) WithSuggestion(s string) *StickyError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *StickyError) Wrap(err error) *StickyError {
	e.Wrapped = err
	return e
}

// New creates a StickyError from a registered error code.
func New(code string) *StickyError {
	template, ok := registry[code]
	if !ok {
		return &StickyError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StickyError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new StickyError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StickyError {
	return &StickyError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a StickyError with the given code.
// A StickyError anywhere in err's chain is returned as is.
func FromError(err error, code string) *StickyError {
	if err == nil {
		return nil
	}
	var se *StickyError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first StickyError in err's chain, or "".
func Code(err error) string {
	var se *StickyError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}
