// Package apperrors defines the error taxonomy shared by services and
// handlers. Services classify failures into a Kind; the HTTP layer maps the
// Kind to a status code and returns the stable client-facing message while
// the wrapped cause stays in the logs.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP translation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnsupportedMedia
	KindUpstream
)

// Error carries a classification, a client-safe message and an optional
// wrapped cause. UpstreamStatus holds the remote status code for
// KindUpstream errors so it can be surfaced to the caller.
type Error struct {
	Kind           Kind
	Message        string
	Err            error
	UpstreamStatus int
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

// New creates an error with the given kind and client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for
// unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err. Unclassified errors get
// a generic message so internal detail never reaches the client.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error."
}

// Upstream wraps a non-2xx response from an external service, keeping the
// remote status so the HTTP layer can pass it through.
func Upstream(status int, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err, UpstreamStatus: status}
}

// StatusOf maps an error to its HTTP status code.
// Conflict maps to 400, not 409, preserving the API's existing contract.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == KindUpstream && ae.UpstreamStatus > 0 {
		return ae.UpstreamStatus
	}
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
