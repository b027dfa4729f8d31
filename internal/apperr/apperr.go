// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperr defines the error taxonomy shared by every layer of the
// application.
//
// Each failure carries a [Kind] that maps one-to-one onto an HTTP status code.
// Services return *[Error] values (usually package-level sentinels wrapped with
// fmt.Errorf("...: %w", err)); the transport layer never reinterprets them and
// only calls [KindOf] and [MessageOf] to shape the response.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the outer boundary.
type Kind int

const (
	// KindInternal is the zero value: anything unclassified is internal.
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidOperation
	KindUnavailable
)

var kindNames = map[Kind]string{
	KindInternal:         "Internal",
	KindInvalidInput:     "InvalidInput",
	KindUnauthenticated:  "Unauthenticated",
	KindForbidden:        "Forbidden",
	KindNotFound:         "NotFound",
	KindConflict:         "Conflict",
	KindInvalidOperation: "InvalidOperation",
	KindUnavailable:      "Unavailable",
}

var kindStatuses = map[Kind]int{
	KindInternal:         http.StatusInternalServerError,
	KindInvalidInput:     http.StatusBadRequest,
	KindUnauthenticated:  http.StatusUnauthorized,
	KindForbidden:        http.StatusForbidden,
	KindNotFound:         http.StatusNotFound,
	KindConflict:         http.StatusConflict,
	KindInvalidOperation: http.StatusBadRequest,
	KindUnavailable:      http.StatusServiceUnavailable,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// HTTPStatus returns the status code the kind is reported with.
func (k Kind) HTTPStatus() int {
	if status, ok := kindStatuses[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a classified application error. Message is safe to show to
// clients; Err, when set, is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates a classified error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind with a client-facing message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when err carries no classification.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err. Unclassified errors
// never leak their text.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "internal server error"
}
