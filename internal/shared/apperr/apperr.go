// Package apperr defines the error kinds every service operation reports.
// An operation never lets a raw store error escape: it is wrapped here with
// a caller-facing comment, and the original message stays diagnostic-only.
package apperr

import (
	"context"
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindStoreFailure   Kind = "store_failure"
	KindTimeout        Kind = "timeout"
)

type Error struct {
	Kind    Kind
	Comment string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Comment + ": " + e.Err.Error()
	}
	return e.Comment
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, comment string) *Error {
	return &Error{Kind: kind, Comment: comment}
}

// InvalidRequest is the uniform rejection for a body that fails strict
// validation, deliberately unspecific about which field was wrong.
func InvalidRequest() *Error {
	return New(KindInvalidRequest, "incorrect request data")
}

// Store wraps an underlying store error. A deadline hit is reported as its
// own kind so a slow store is never mistaken for a broken one.
func Store(err error, comment string) *Error {
	kind := KindStoreFailure
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Comment: comment, Err: err}
}

// KindOf extracts the kind from err, defaulting to store failure for
// anything that was not wrapped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// CommentOf returns the caller-facing comment, never the wrapped cause.
func CommentOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Comment
	}
	return "internal server error"
}

func StatusOf(err error) int {
	switch KindOf(err) {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
