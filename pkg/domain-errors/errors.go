// Package domainerrors carries coded errors across layers. Services return these
// (optionally wrapping infrastructure errors) and the HTTP layer maps the code to a
// status without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation is a user-correctable input problem (ValidationError).
	CodeValidation Code = "validation"
	// CodeBadRequest is a malformed request that never reached domain validation.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound means the addressed resource does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict means the resource is in a state that forbids the operation.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation is a programming defect such as confirming a session
	// that is not the active one (SequenceError).
	CodeInvariantViolation Code = "invariant_violation"
	// CodeProvider is an external registry failure (ProviderError).
	CodeProvider Code = "provider"
	// CodeJob is a report job failure during dispatch (JobError).
	CodeJob Code = "job"
	// CodeInternal is anything else.
	CodeInternal Code = "internal"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. Wrapping nil returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost coded error in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in the chain has the given code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// Is is errors.Is re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
