// Package apperr defines the error taxonomy shared between services and the
// HTTP boundary. Services raise NotFound, InvalidInput and Conflict errors
// with user-safe messages; everything else is treated as Internal and its
// detail must not reach the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrResourceNotFound is the shared not-found error; every entity lookup
// that misses (absent or soft-deleted row) surfaces this exact message.
var ErrResourceNotFound = New(NotFound, "Resource not found.")

type Kind int

const (
	Internal Kind = iota
	NotFound
	InvalidInput
	Conflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified, user-facing error. Msg is safe to surface verbatim.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets sentinel *Error values match wrapped copies of themselves by
// kind and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf classifies any error. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the user-safe message for err, or a generic one for
// internal errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return "Internal server error."
}

// HTTPStatus maps the taxonomy to status codes: NotFound to 404,
// InvalidInput and Conflict to 400, anything else to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput, Conflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
