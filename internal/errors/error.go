package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
	CategorySubmit   Category = "submit"
)

// RegformError is a structured error with a code, suggestion and documentation.
type RegformError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RegformError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RegformError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RegformError) WithSuggestion(s string) *RegformError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RegformError) WithDetail(d string) *RegformError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RegformError) Wrap(err error) *RegformError {
	e.Wrapped = err
	return e
}

// New creates a RegformError from a registered error code.
func New(code string) *RegformError {
	template, ok := registry[code]
	if !ok {
		return &RegformError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RegformError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RegformError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RegformError {
	return &RegformError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RegformError.
func FromError(err error, code string) *RegformError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RegformError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// Is reports whether err is a RegformError with the given code.
func Is(err error, code string) bool {
	for err != nil {
		if re, ok := err.(*RegformError); ok && re.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
