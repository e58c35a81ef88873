package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the single failure type crossing usecase boundaries. Handlers
// map Kind to an HTTP status; anything that is not an *Error is treated as
// an internal failure.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // per-field messages, set for validation errors
	Err     error             // wrapped cause, never serialized to clients
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
