// Package errors provides coded errors shared by the layout packages, the
// store, the CLI and the HTTP API.
//
// Every failure that crosses a package boundary is an [*Error] carrying a
// [Code]. Lower layers wrap sentinel errors so both checks work:
//
//	err := errors.Wrap(errors.ErrCodeConstruction, layout.ErrTabOutOfRange, "tab %d of %d", i, n)
//	errors.Is(err, errors.ErrCodeConstruction) // true
//	stderrors.Is(err, layout.ErrTabOutOfRange) // true
//
// Codes fall into a few classes (see [Code.Class]) that decide how a caller
// reacts: fix the input, report a missing layout, or retry later.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. Codes are stable: the HTTP API
// returns them in error bodies.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// ErrCodeConstruction is raised by node constructors and in-place setters.
	ErrCodeConstruction Code = "INVALID_NODE"
	// ErrCodeStructure is a tree invariant violation, such as a root placed
	// in a child position.
	ErrCodeStructure Code = "STRUCTURE"
	// ErrCodePlacement means no group or gravity anchor accepted a child.
	ErrCodePlacement Code = "PLACEMENT"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	ErrCodeStore   Code = "STORE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by how a caller should react to them.
type Class int

const (
	ClassInternal    Class = iota // bug or unknown failure
	ClassInvalid                  // bad input; retrying the same request fails again
	ClassNotFound                 // the named layout, node or file does not exist
	ClassRejected                 // valid input the layout cannot accept
	ClassUnavailable              // backend failure; retrying may succeed
	ClassUnsupported
)

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidName, ErrCodeInvalidTemplate,
		ErrCodeInvalidFormat, ErrCodeConstruction, ErrCodeStructure:
		return ClassInvalid
	case ErrCodeNotFound, ErrCodeLayoutNotFound, ErrCodeFileNotFound:
		return ClassNotFound
	case ErrCodePlacement:
		return ClassRejected
	case ErrCodeStore, ErrCodeTimeout:
		return ClassUnavailable
	case ErrCodeUnsupported:
		return ClassUnsupported
	}
	return ClassInternal
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the outermost code in err's chain, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ClassOf returns the class of err's outermost code. Uncoded errors are
// internal.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// UserMessage returns the message of err's outermost *Error without the
// code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
