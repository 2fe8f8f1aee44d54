// Package apperr defines the closed set of error kinds the service can
// surface to clients and how each one maps to an HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooLarge
)

// Error carries a client safe message. Err holds the underlying cause,
// if any, and is never shown to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}

	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Validation(msg string) error {
	return New(KindValidation, msg)
}

// Internal wraps an unexpected error. Its message is never sent to a client.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "Internal server error", Err: err}
}

var (
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")
	ErrUnauthorized       = New(KindUnauthorized, "Unauthorized")
	ErrForbidden          = New(KindForbidden, "Forbidden")
	ErrEmailTaken         = New(KindConflict, "User already exists")
	ErrEntryNotFound      = New(KindNotFound, "File not found")
	ErrBlobMissing        = New(KindNotFound, "File not found on disk")
	ErrParentNotFound     = New(KindValidation, "Parent folder not found")
	ErrTooLarge           = New(KindTooLarge, "File exceeds the upload size limit")
)

// KindOf returns the kind of the first *Error in err's chain.
// Anything else is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Message returns the client safe message for err
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}

	return "Internal server error"
}

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooLarge:
		return "too_large"
	default:
		return "internal"
	}
}
