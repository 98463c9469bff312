// Package domainerrors defines the error taxonomy shared by every service in
// the core. Services construct these at the point of violation; transport
// layers translate codes into their own representations (HTTP statuses, exit
// codes) without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks malformed input: bad task fields, unknown
	// difficulty, non-increasing league thresholds.
	CodeValidation Code = "validation"
	// CodeConflict marks state collisions: duplicate pending task names,
	// re-completing a completed task, an existing friend relation.
	CodeConflict Code = "conflict"
	// CodeNotFound marks missing entities looked up by id or name.
	CodeNotFound Code = "not_found"
	// CodeForbidden marks operations the caller is not allowed to perform,
	// such as responding to a friend request addressed to someone else.
	CodeForbidden Code = "forbidden"
	// CodeInvariantViolation marks broken aggregate invariants detected at
	// construction time. Services usually re-map these to CodeValidation
	// before they reach a caller.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error carries a code, a message and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
